package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML view file
type ViewParameters struct {
	Title        string   `yaml:"Title"`
	FrameDelayMS int      `yaml:"FrameDelayMS"` // base playback interval at 1x speed
	PlaySpeed    float64  `yaml:"PlaySpeed"`    // 0.25 - 4.0
	Loop         bool     `yaml:"Loop"`
	Palette      string   `yaml:"Palette"`  // "rainbow" or "abaqus"
	FieldMin     *float64 `yaml:"FieldMin"` // active range override, nil = global min
	FieldMax     *float64 `yaml:"FieldMax"` // active range override, nil = global max
}

func NewViewParameters() *ViewParameters {
	return &ViewParameters{
		FrameDelayMS: 100,
		PlaySpeed:    1.0,
		Loop:         true,
		Palette:      "rainbow",
	}
}

func (vp *ViewParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, vp)
}

func (vp *ViewParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", vp.Title)
	fmt.Printf("%d\t\t\t= FrameDelayMS\n", vp.FrameDelayMS)
	fmt.Printf("%8.5f\t\t= PlaySpeed\n", vp.PlaySpeed)
	fmt.Printf("[%v]\t\t\t= Loop\n", vp.Loop)
	fmt.Printf("[%s]\t\t= Palette\n", vp.Palette)
	if vp.FieldMin != nil {
		fmt.Printf("%8.5f\t\t= FieldMin\n", *vp.FieldMin)
	}
	if vp.FieldMax != nil {
		fmt.Printf("%8.5f\t\t= FieldMax\n", *vp.FieldMax)
	}
}
