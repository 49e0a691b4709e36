package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/openquant/capgain/internal/config"
	"github.com/openquant/capgain/internal/handlers"
	"github.com/openquant/capgain/internal/logger"
	"github.com/openquant/capgain/internal/lognormal"
	"github.com/openquant/capgain/internal/pricer"
	"github.com/openquant/capgain/internal/quadrature"
	"github.com/openquant/capgain/internal/report"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML or JSON config (built-in defaults if empty)")
		spot       = flag.Float64("spot", 0, "spot price S0 (overrides config)")
		alpha      = flag.Float64("alpha", 0, "payoff scaling factor (overrides config)")
		capH       = flag.Float64("cap", 0, "payoff cap H (overrides config)")
		rate       = flag.Float64("rate", 0, "drift / risk-free rate (overrides config)")
		vol        = flag.Float64("vol", 0, "volatility (overrides config)")
		horizon    = flag.Float64("horizon", 0, "time horizon in years (overrides config)")
		rest       = flag.Bool("rest", false, "run as REST server")
		port       = flag.String("port", "", "REST listen address (overrides config)")
		outDir     = flag.String("out", "", "report output directory, empty disables reports (overrides config)")
		verbosity  = flag.Int("v", 1, "verbosity: 0=errors 1=info 2=debug 3=trace")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	// Flags set on the command line win over config file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "spot":
			cfg.Scenario.Spot = *spot
		case "alpha":
			cfg.Scenario.Alpha = *alpha
		case "cap":
			cfg.Scenario.Cap = *capH
		case "rate":
			cfg.Scenario.Rate = *rate
		case "vol":
			cfg.Scenario.Vol = *vol
		case "horizon":
			cfg.Scenario.Horizon = *horizon
		case "port":
			cfg.Port = *port
		case "out":
			cfg.ReportDir = *outDir
		case "v":
			cfg.Verbosity = *verbosity
		}
	})
	logger.SetVerbosity(cfg.Verbosity)

	opt := quadrature.Options{
		RelTol:       cfg.Quadrature.RelTol,
		AbsTol:       cfg.Quadrature.AbsTol,
		MaxIntervals: cfg.Quadrature.MaxIntervals,
	}

	if *rest {
		router := handlers.NewRouter(opt)
		logger.Infof("starting REST server on %s", cfg.Port)
		if err := http.ListenAndServe(cfg.Port, router); err != nil {
			logger.Errorf("server: %v", err)
			os.Exit(1)
		}
		return
	}

	dist := lognormal.TerminalDist{
		Spot:    cfg.Scenario.Spot,
		Rate:    cfg.Scenario.Rate,
		Vol:     cfg.Scenario.Vol,
		Horizon: cfg.Scenario.Horizon,
	}
	pay := pricer.CappedGain{Alpha: cfg.Scenario.Alpha, Cap: cfg.Scenario.Cap}

	val, err := pricer.ExpectedPayoff(dist, pay, opt)
	if err != nil {
		if errors.Is(err, quadrature.ErrTolerance) {
			// Best estimate is still usable; print it but fail the run.
			logger.Errorf("tolerance not reached: %v", err)
			fmt.Printf("%.10g\n", val.Value)
		} else {
			logger.Errorf("valuation failed: %v", err)
		}
		os.Exit(1)
	}

	if cfg.Verbosity >= 2 {
		if mass, err := pricer.DensityMass(dist, opt); err == nil {
			logger.Debugf("density mass = %.12f (should be 1)", mass.Value)
		} else {
			logger.Debugf("density mass check failed: %v", err)
		}
	}

	logger.Infof("expected payoff %.10g, error bound %.3g", val.Value, val.AbsError)
	fmt.Printf("%.10g\n", val.Value)

	if cfg.ReportDir != "" {
		if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
			logger.Errorf("could not create report dir %s: %v", cfg.ReportDir, err)
			return
		}
		rec := report.Record{Scenario: cfg.Scenario, Result: val}
		if err := report.WriteJSON(rec, cfg.ReportDir); err != nil {
			logger.Errorf("writing JSON report: %v", err)
		}
		if err := report.WriteCSV(rec, cfg.ReportDir); err != nil {
			logger.Errorf("writing CSV report: %v", err)
		}
	}
}
