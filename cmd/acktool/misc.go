package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/Faultbox/ackasset/internal/config"
	"github.com/Faultbox/ackasset/pkg/guid"
)

func cmdGUID(args []string) error {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v < 1 {
			return fmt.Errorf("invalid count %q", args[0])
		}
		n = v
	}
	for range n {
		fmt.Println(guid.New())
	}
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	write := fs.String("write", "", "Save the configuration to this path instead of printing it")
	fs.Parse(args)

	if *write != "" {
		if err := cfg.SaveTo(*write); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved: %s\n", *write)
		return nil
	}

	data, err := cfg.YAML()
	if err != nil {
		return err
	}
	os.Stdout.Write(data)
	return nil
}
