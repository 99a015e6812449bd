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
	"io/ioutil"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/fieldvis/fieldvis/InputParameters"
	"github.com/fieldvis/fieldvis/plotter"
	"github.com/fieldvis/fieldvis/render"
	"github.com/fieldvis/fieldvis/tui"
	"github.com/fieldvis/fieldvis/viewer"
)

type ModelView struct {
	MeshFile   string
	FieldFiles []string
	ParamsFile string
	Graph      bool
	Verbose    bool
	Profile    bool
}

// ViewCmd represents the view command
var ViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Animate scalar field series on a finite element mesh",
	Long:  `Animate scalar field series on a finite element mesh`,
	Run: func(cmd *cobra.Command, args []string) {
		var (
			err error
		)
		mv := &ModelView{}
		if mv.MeshFile, err = cmd.Flags().GetString("meshFile"); err != nil {
			panic(err)
		}
		if mv.FieldFiles, err = cmd.Flags().GetStringArray("fieldFile"); err != nil {
			panic(err)
		}
		mv.ParamsFile, _ = cmd.Flags().GetString("paramsFile")
		mv.Graph, _ = cmd.Flags().GetBool("graph")
		mv.Verbose, _ = cmd.Flags().GetBool("verbose")
		mv.Profile, _ = cmd.Flags().GetBool("profile")
		vp := processViewInput(mv)
		if mv.Profile {
			defer profile.Start().Stop()
		}
		RunView(mv, vp)
	},
}

func processViewInput(mv *ModelView) (vp *InputParameters.ViewParameters) {
	var (
		err      error
		willExit bool
	)
	if len(mv.MeshFile) == 0 {
		err := fmt.Errorf("must supply a mesh file (-M, --meshFile) in Abaqus (.inp) format")
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	if len(mv.FieldFiles) == 0 {
		err := fmt.Errorf("must supply at least one field series file (-F, --fieldFile) in .csv format")
		fmt.Printf("error: %s\n", err.Error())
		willExit = true
	}
	if willExit {
		exampleFile := `
########################################
Title: "Test Case"
FrameDelayMS: 100
PlaySpeed: 1.0
Loop: true
Palette: rainbow # Can be "abaqus"
########################################
`
		fmt.Printf("Example Parameters File:%s\n", exampleFile)
		os.Exit(1)
	}
	vp = InputParameters.NewViewParameters()
	if len(mv.ParamsFile) != 0 {
		var data []byte
		if data, err = ioutil.ReadFile(mv.ParamsFile); err != nil {
			panic(err)
		}
		if err = vp.Parse(data); err != nil {
			panic(err)
		}
	}
	if mv.Verbose {
		vp.Print()
	}
	return
}

func init() {
	rootCmd.AddCommand(ViewCmd)
	ViewCmd.Flags().StringP("meshFile", "M", "", "Mesh file to read in Abaqus (.inp) format")
	ViewCmd.Flags().StringArrayP("fieldFile", "F", nil, "Field series file in .csv format, repeatable for a field library")
	ViewCmd.Flags().StringP("paramsFile", "I", "", "YAML file for view parameters like:\n\t- PlaySpeed\n\t- Palette")
	ViewCmd.Flags().BoolP("graph", "g", false, "display the field in a graphics window while playing")
	ViewCmd.Flags().BoolP("verbose", "v", false, "print parse and reconciliation detail")
	ViewCmd.Flags().Bool("profile", false, "write a CPU profile for this run")
}

func RunView(mv *ModelView, vp *InputParameters.ViewParameters) {
	session := viewer.NewSession(mv.Verbose)
	if err := session.LoadMesh(mv.MeshFile); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
	for _, ff := range mv.FieldFiles {
		warn, err := session.LoadFieldSeries(ff)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if warn != nil {
			fmt.Printf("warning: %s\n", warn.String())
		}
	}
	applyViewParameters(session, vp)

	var renderer tui.Renderer
	if mv.Graph {
		sc, err := session.Scene()
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		cs := plotter.NewChartState(sc, 1024, 1024)
		cs.Render(sc)
		renderer = cs
	}
	m := tui.NewModel(session, renderer)
	m.SetBaseDelay(time.Duration(vp.FrameDelayMS) * time.Millisecond)
	m.SetSpeed(vp.PlaySpeed)
	session.Play()
	if err := tui.Run(m); err != nil {
		fmt.Printf("error: %s\n", err.Error())
		os.Exit(1)
	}
}

func applyViewParameters(session *viewer.Session, vp *InputParameters.ViewParameters) {
	session.SetLoop(vp.Loop)
	if p, err := render.ParsePalette(vp.Palette); err == nil {
		session.SetPalette(p)
	} else {
		fmt.Printf("warning: %s\n", err.Error())
	}
	if vp.FieldMin != nil && vp.FieldMax != nil {
		if err := session.SetActiveRange(*vp.FieldMin, *vp.FieldMax); err != nil {
			fmt.Printf("warning: %s\n", err.Error())
		}
	}
}
