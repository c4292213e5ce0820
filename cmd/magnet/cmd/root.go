package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/file"
	"github.com/jt05610/magnet/netfile"
	"github.com/jt05610/magnet/pnml"
)

var rootCmd = &cobra.Command{
	Use:   "magnet",
	Short: "Compositional discovery of multi-agent process models",
	Long: `magnet discovers a multi-agent process model from an event log: it
partitions the log per participant, mines a local model for each, validates
every local model against its interface-pattern view, and merges the
validated models into one architecture-aware net.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func codecFor(path string) file.Service {
	switch filepath.Ext(path) {
	case ".pnml", ".xml":
		return &pnml.Service{}
	default:
		return &netfile.Service{}
	}
}

func loadNet(path string) *magnet.Net {
	df, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = df.Close()
	}()
	n, err := codecFor(path).Load(context.Background(), df)
	if err != nil {
		panic(fmt.Errorf("loading %s: %w", path, err))
	}
	return n
}

func saveNet(path string, n *magnet.Net) {
	df, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = df.Close()
	}()
	if err := codecFor(path).Save(context.Background(), df, n); err != nil {
		panic(fmt.Errorf("saving %s: %w", path, err))
	}
}
