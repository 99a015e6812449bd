/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldvis/fieldvis/plotter"
	"github.com/fieldvis/fieldvis/readfiles"
	"github.com/fieldvis/fieldvis/render"
	"github.com/fieldvis/fieldvis/tui"
	"github.com/fieldvis/fieldvis/viewer"
)

type ModelDual struct {
	MeshFileA  string
	FieldFileA string
	MeshFileB  string
	FieldFileB string
	ParamsFile string
	Graph      bool
	Verbose    bool
}

// DualCmd represents the dual command
var DualCmd = &cobra.Command{
	Use:   "dual",
	Short: "Animate two field series side by side on a shared timeline",
	Long: `Animate two field series side by side on a shared timeline,
with an A minus B difference scene for result comparison`,
	Run: func(cmd *cobra.Command, args []string) {
		md := &ModelDual{}
		md.MeshFileA, _ = cmd.Flags().GetString("meshFileA")
		md.FieldFileA, _ = cmd.Flags().GetString("fieldFileA")
		md.MeshFileB, _ = cmd.Flags().GetString("meshFileB")
		md.FieldFileB, _ = cmd.Flags().GetString("fieldFileB")
		md.ParamsFile, _ = cmd.Flags().GetString("paramsFile")
		md.Graph, _ = cmd.Flags().GetBool("graph")
		md.Verbose, _ = cmd.Flags().GetBool("verbose")
		RunDual(md)
	},
}

func init() {
	rootCmd.AddCommand(DualCmd)
	DualCmd.Flags().String("meshFileA", "", "Left mesh file in Abaqus (.inp) format")
	DualCmd.Flags().String("fieldFileA", "", "Left field series file in .csv format")
	DualCmd.Flags().String("meshFileB", "", "Right mesh file in Abaqus (.inp) format, defaults to the left mesh")
	DualCmd.Flags().String("fieldFileB", "", "Right field series file in .csv format")
	DualCmd.Flags().StringP("paramsFile", "I", "", "YAML file for view parameters")
	DualCmd.Flags().BoolP("graph", "g", false, "display both fields in graphics windows while playing")
	DualCmd.Flags().BoolP("verbose", "v", false, "print parse and reconciliation detail")
}

func RunDual(md *ModelDual) {
	var willExit bool
	if len(md.MeshFileA) == 0 || len(md.FieldFileA) == 0 {
		fmt.Printf("error: must supply the left pair (--meshFileA, --fieldFileA)\n")
		willExit = true
	}
	if len(md.FieldFileB) == 0 {
		fmt.Printf("error: must supply the right field series (--fieldFileB)\n")
		willExit = true
	}
	if willExit {
		os.Exit(1)
	}
	if len(md.MeshFileB) == 0 {
		md.MeshFileB = md.MeshFileA
	}

	meshA, err := readfiles.ReadInpMesh(md.MeshFileA, md.Verbose)
	if err != nil {
		fatal(err)
	}
	seriesA, err := readfiles.ReadFieldSeries(md.FieldFileA, md.Verbose)
	if err != nil {
		fatal(err)
	}
	meshB := meshA
	if md.MeshFileB != md.MeshFileA {
		if meshB, err = readfiles.ReadInpMesh(md.MeshFileB, md.Verbose); err != nil {
			fatal(err)
		}
	}
	seriesB, err := readfiles.ReadFieldSeries(md.FieldFileB, md.Verbose)
	if err != nil {
		fatal(err)
	}

	dual, err := viewer.NewDualViewer(meshA, seriesA, meshB, seriesB)
	if err != nil {
		fatal(err)
	}
	warnA, warnB := dual.Warnings()
	if warnA.Missing > 0 {
		fmt.Printf("warning: %s\n", warnA.String())
	}
	if warnB.Missing > 0 {
		fmt.Printf("warning: %s\n", warnB.String())
	}

	mvp := &ModelView{ParamsFile: md.ParamsFile, Verbose: md.Verbose,
		MeshFile: md.MeshFileA, FieldFiles: []string{md.FieldFileA}}
	vp := processViewInput(mvp)
	dual.Controller().SetLoop(vp.Loop)
	if p, err := render.ParsePalette(vp.Palette); err == nil {
		dual.SetPalette(p)
	}

	var rendererA, rendererB tui.Renderer
	if md.Graph {
		scA, scB := dual.Scenes()
		csA := plotter.NewChartState(scA, 768, 768)
		csA.Render(scA)
		rendererA = csA
		csB := plotter.NewChartState(scB, 768, 768)
		csB.Render(scB)
		rendererB = csB
	}
	m := tui.NewDualModel(dual, rendererA, rendererB)
	m.SetBaseDelay(time.Duration(vp.FrameDelayMS) * time.Millisecond)
	m.SetSpeed(vp.PlaySpeed)
	dual.Controller().Play()
	if err := tui.RunDual(m); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Printf("error: %s\n", err.Error())
	os.Exit(1)
}
