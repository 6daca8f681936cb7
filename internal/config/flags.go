package config

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var (
	flagConfig   = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagMode     = flag.String("mode", "", "Projection mode: box or planar")
	flagInput    = flag.String("in", "", "Input OBJ mesh")
	flagOutput   = flag.String("out", "", "Output OBJ mesh (default <in>_uv.obj)")
	flagSize     = flag.Float64("size", 0, "Projection size for both modes (0 means 1)")
	flagZRot     = flag.Float64("zrot", 0, "Planar Z rotation in degrees")
	flagAspect   = flag.Float64("aspect", 0, "Texture aspect (width/height); disables auto-aspect")
	flagImage    = flag.String("image", "", "Texture image used to detect the aspect")
	flagGroups   = flag.String("groups", "", "Comma-separated OBJ groups to select")
	flagSelected = flag.Bool("selected", false, "Only write UVs for selected faces")
	flagWatch    = flag.Bool("watch", false, "Re-run when the input mesh or texture changes")
	flagDump     = flag.String("dump-config", "", "Write the effective config to this path and exit")

	flagRotation     = newFloatList(3)
	flagOffset       = newFloatList(3)
	flagPlanarOffset = newFloatList(2)
)

func init() {
	flag.Var(flagRotation, "rot", "Box rotation in degrees as x,y,z")
	flag.Var(flagOffset, "offset", "Box offset as x,y,z")
	flag.Var(flagPlanarOffset, "planar-offset", "Planar offset as x,y")
}

// floatList is a fixed-length, comma-separated list of numbers.
type floatList struct {
	vals []float32
}

func newFloatList(n int) *floatList {
	return &floatList{vals: make([]float32, n)}
}

func (f *floatList) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(f.vals))
	for i, v := range f.vals {
		parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
	}
	return strings.Join(parts, ",")
}

func (f *floatList) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != len(f.vals) {
		return fmt.Errorf("want %d comma-separated values, got %d", len(f.vals), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return err
		}
		f.vals[i] = float32(v)
	}
	return nil
}

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// DumpPath returns the --dump-config path, if any.
func DumpPath() string {
	return *flagDump
}

// setFlags returns the names of the flags given on the command line.
func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies the flags named in set to the config. Only explicitly
// given flags override, so zero values such as -size=0 take effect.
func applyFlags(cfg *Config, set map[string]bool) {
	if set["debug"] && *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if set["mode"] {
		cfg.Mode = *flagMode
	}
	if set["in"] {
		cfg.Input = *flagInput
	}
	if set["out"] {
		cfg.Output = *flagOutput
	}
	if set["size"] {
		cfg.Box.Size = float32(*flagSize)
		cfg.Planar.Size = float32(*flagSize)
	}
	if set["zrot"] {
		cfg.Planar.ZRotation = float32(*flagZRot)
	}
	if set["rot"] {
		copy(cfg.Box.Rotation[:], flagRotation.vals)
	}
	if set["offset"] {
		copy(cfg.Box.Offset[:], flagOffset.vals)
	}
	if set["planar-offset"] {
		copy(cfg.Planar.Offset[:], flagPlanarOffset.vals)
	}
	if set["aspect"] {
		cfg.Texture.Aspect = float32(*flagAspect)
		cfg.Texture.AutoAspect = false
	}
	if set["image"] {
		cfg.Texture.Image = *flagImage
	}
	if set["groups"] {
		cfg.Selection.Groups = nil
		if *flagGroups != "" {
			cfg.Selection.Groups = strings.Split(*flagGroups, ",")
		}
	}
	if set["selected"] {
		cfg.Selection.Only = *flagSelected
	}
	if set["watch"] {
		cfg.Watch.Enabled = *flagWatch
	}
}
