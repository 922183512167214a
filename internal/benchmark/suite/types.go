package suite

// EvalConfig is the YAML evaluation configuration of a scoring run.
type EvalConfig struct {
	RendererType    string        `yaml:"renderer_type" validate:"omitempty,oneof=cpp python vispy"`
	TargetsFilename string        `yaml:"targets_filename"`
	VisibGtMin      float64       `yaml:"visib_gt_min" validate:"gte=-1,lte=1"`
	ResultsPath     string        `yaml:"results_path"`
	EvalPath        string        `yaml:"eval_path"`
	ResultFilenames []string      `yaml:"result_filenames" validate:"dive,required"`
	Errors          []ErrorConfig `yaml:"errors" validate:"required,min=1,dive"`
	Plot            PlotConfig    `yaml:"plot"`
}

// ErrorConfig describes one error family. Thresholds and VSD tolerances are
// given either as explicit lists or as half-open ranges.
type ErrorConfig struct {
	Type           string             `yaml:"type" validate:"required,oneof=vsd mssd mspd ad add adi cus proj"`
	NTop           int                `yaml:"n_top" validate:"gte=-1"`
	CorrectTh      [][]float64        `yaml:"correct_th" validate:"omitempty,dive,min=1"`
	CorrectThRange *Range             `yaml:"correct_th_range"`
	VSDDeltas      map[string]float64 `yaml:"vsd_deltas" validate:"omitempty,dive,gt=0"`
	VSDTaus        []float64          `yaml:"vsd_taus" validate:"omitempty,dive,gte=0"`
	VSDTausRange   *Range             `yaml:"vsd_taus_range"`
}

// Range expands to start, start+step, ... while below stop.
type Range struct {
	Start float64 `yaml:"start"`
	Stop  float64 `yaml:"stop" validate:"gtfield=Start"`
	Step  float64 `yaml:"step" validate:"gt=0"`
}

type PlotConfig struct {
	Enabled   bool   `yaml:"enabled"`
	OutputDir string `yaml:"output_dir"`
}
