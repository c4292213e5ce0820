package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jt05610/magnet"
	"github.com/jt05610/magnet/analysis"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze -i net.yaml",
	Short: "Print structural properties of a net",
	Run: func(cmd *cobra.Command, args []string) {
		net := loadNet(inputFile)
		aNet := &analysis.Net{Net: net}
		rows, cols := aNet.Incidence().Dims()
		fmt.Printf("net:         %s\n", net.ID)
		fmt.Printf("places:      %d\n", cols)
		fmt.Printf("transitions: %d\n", rows)
		fmt.Printf("hash:        %s\n", magnet.CanonicalHash(net))
		fmt.Printf("final reachable: %v\n", aNet.FinalReachable())
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file")
}
