package suite

// DefaultVSDDeltas are the visibility deltas of the BOP datasets in mm.
var DefaultVSDDeltas = map[string]float64{
	"hb":    15,
	"icbin": 15,
	"icmi":  15,
	"itodd": 5,
	"lm":    15,
	"lmo":   15,
	"ruapc": 15,
	"tless": 15,
	"tudl":  15,
	"tyol":  15,
	"ycbv":  15,
}

const (
	DefaultVisibGtMin      = 0.1
	DefaultRendererType    = "cpp"
	DefaultTargetsFilename = "test_targets_bop19.json"
)

// Default returns the BOP19 configuration: VSD, MSSD and MSPD over the
// standard threshold grids.
func Default() *EvalConfig {
	fractions := &Range{Start: 0.05, Stop: 0.51, Step: 0.05}
	return &EvalConfig{
		RendererType:    DefaultRendererType,
		TargetsFilename: DefaultTargetsFilename,
		VisibGtMin:      DefaultVisibGtMin,
		Errors: []ErrorConfig{
			{
				Type:           "vsd",
				NTop:           -1,
				VSDDeltas:      DefaultVSDDeltas,
				VSDTausRange:   fractions,
				CorrectThRange: fractions,
			},
			{
				Type:           "mssd",
				NTop:           -1,
				CorrectThRange: fractions,
			},
			{
				Type:           "mspd",
				NTop:           -1,
				CorrectThRange: &Range{Start: 5, Stop: 51, Step: 5},
			},
		},
	}
}
