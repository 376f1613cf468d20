package main

import "fmt"

// runConfig prints the effective configuration as YAML, after the config
// file, PAPEREXPORT_* variables, and flags are applied.
func runConfig(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadSettings(flags, envCfg)
	if err != nil {
		return withHint(err, nil)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	out, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
