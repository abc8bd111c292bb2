package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/panelcut/internal/importer"
	"github.com/piwi3910/panelcut/internal/model"
	"github.com/piwi3910/panelcut/internal/project"
	"github.com/spf13/cobra"
)

// inputFlags are shared by every command that runs the optimizer.
type inputFlags struct {
	stockPath   string
	partsPath   string
	projectPath string
	warehouse   bool
	thickness   float64

	kerf        float64
	fit         string
	philosophy  string
	weights     string
	algorithm   string
	maxAttempts int
	noDownsize  bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.stockPath, "stock", "s", "", "stock list (.csv, .xlsx or .json project)")
	flags.StringVarP(&f.partsPath, "parts", "p", "", "part list (.csv, .xlsx, .dxf or .json project)")
	flags.StringVar(&f.projectPath, "project", "", "JSON project with stock, parts and settings")
	flags.BoolVar(&f.warehouse, "warehouse", false, "draw stock from the warehouse")
	flags.Float64Var(&f.thickness, "thickness", 0, "thickness for imported rows that omit it (mm)")

	flags.Float64VarP(&f.kerf, "kerf", "k", 0, "blade kerf (mm)")
	flags.StringVar(&f.fit, "fit", "", "candidate selection: best or first")
	flags.StringVar(&f.philosophy, "philosophy", "", "yield, cuts, grain or mixed")
	flags.StringVar(&f.weights, "weights", "", "custom weights yield,cuts,grain (implies --philosophy mixed)")
	flags.StringVar(&f.algorithm, "algorithm", "", "greedy or genetic")
	flags.IntVar(&f.maxAttempts, "max-attempts", 0, "placement attempt budget")
	flags.BoolVar(&f.noDownsize, "no-downsize", false, "keep parts on the first sheet chosen")
}

// job is everything one optimization run needs.
type job struct {
	name     string
	stocks   []model.StockDefinition
	parts    []model.PartRequirement
	settings model.CutSettings
}

// load assembles the run. Settings start from defaults, then the app config,
// then the project file, then any flag given on the command line.
func (f *inputFlags) load(cmd *cobra.Command) (job, error) {
	j := job{name: "Untitled", settings: model.DefaultSettings()}
	appConfig.ApplyToSettings(&j.settings)

	if f.projectPath != "" {
		proj, err := project.Load(f.projectPath)
		if err != nil {
			return job{}, err
		}
		j.name = proj.Name
		j.stocks = proj.Stocks
		j.parts = proj.Parts
		j.settings = proj.Settings
	}

	if f.stockPath != "" {
		res, err := f.importFile(f.stockPath, importer.TargetStock)
		if err != nil {
			return job{}, err
		}
		j.stocks = res.Stocks
	}
	if f.warehouse {
		inv, err := project.LoadInventory(inventoryPath())
		if err != nil {
			return job{}, fmt.Errorf("failed to load warehouse: %w", err)
		}
		stocks := inv.Stocks()
		if len(stocks) == 0 {
			return job{}, fmt.Errorf("the warehouse has nothing on hand")
		}
		j.stocks = append(j.stocks, stocks...)
	}
	if f.partsPath != "" {
		res, err := f.importFile(f.partsPath, importer.TargetParts)
		if err != nil {
			return job{}, err
		}
		j.parts = res.Parts
		if f.projectPath == "" {
			j.name = strings.TrimSuffix(filepath.Base(f.partsPath), filepath.Ext(f.partsPath))
		}
	}

	if f.projectPath == "" && f.partsPath == "" {
		return job{}, fmt.Errorf("no parts given: pass --parts or --project")
	}
	if f.projectPath == "" && f.stockPath == "" && !f.warehouse {
		return job{}, fmt.Errorf("no stock given: pass --stock, --warehouse or --project")
	}

	if err := f.applySettings(cmd, &j.settings); err != nil {
		return job{}, err
	}
	return j, nil
}

// importFile reads one list. JSON files are projects; anything else goes
// through the importer. Any row error rejects the whole file.
func (f *inputFlags) importFile(path string, target importer.Target) (importer.ImportResult, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		proj, err := project.Load(path)
		if err != nil {
			return importer.ImportResult{}, err
		}
		return importer.ImportResult{Stocks: proj.Stocks, Parts: proj.Parts}, nil
	}

	res := importer.ImportFile(path, importer.Options{Target: target, DefaultThickness: f.thickness})
	for _, w := range res.Warnings {
		logger.Debug("import", "file", path, "note", w)
	}
	if len(res.Errors) > 0 {
		return res, fmt.Errorf("%s: %s", path, strings.Join(res.Errors, "; "))
	}
	logger.Info("imported", "file", path, "target", target.String(), "rows", res.Rows())
	return res, nil
}

func (f *inputFlags) applySettings(cmd *cobra.Command, s *model.CutSettings) error {
	flags := cmd.Flags()
	if flags.Changed("kerf") {
		s.KerfWidth = f.kerf
	}
	if flags.Changed("fit") {
		mode, err := model.ParseFitMode(f.fit)
		if err != nil {
			return err
		}
		s.FitMode = mode
	}
	if flags.Changed("weights") {
		w, err := parseWeights(f.weights)
		if err != nil {
			return err
		}
		s.CustomWeights = w
		s.Philosophy = model.PhilosophyMixed
	}
	if flags.Changed("philosophy") {
		p, err := model.ParsePhilosophy(f.philosophy)
		if err != nil {
			return err
		}
		s.Philosophy = p
	}
	if flags.Changed("algorithm") {
		a, err := model.ParseAlgorithm(f.algorithm)
		if err != nil {
			return err
		}
		s.Algorithm = a
	}
	if flags.Changed("max-attempts") {
		s.MaxAttempts = f.maxAttempts
	}
	if f.noDownsize {
		s.DownsizeSheets = false
	}
	return nil
}

// parseWeights reads "yield,cuts,grain". Values are clamped later by the
// settings, so only the shape is checked here.
func parseWeights(s string) (model.Weights, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return model.Weights{}, fmt.Errorf("--weights wants three comma separated numbers, got %q", s)
	}
	var vals [3]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return model.Weights{}, fmt.Errorf("--weights: invalid number %q", field)
		}
		vals[i] = v
	}
	return model.Weights{Yield: vals[0], CutSimplicity: vals[1], GrainMatch: vals[2]}, nil
}
