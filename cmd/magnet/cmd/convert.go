package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var convertOut string

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert -i net.yaml -o net.pnml",
	Short: "Convert a net between the yaml and pnml formats",
	Run: func(cmd *cobra.Command, args []string) {
		net := loadNet(inputFile)
		saveNet(convertOut, net)
		fmt.Printf("wrote %s\n", convertOut)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input file")
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "", "output file")
}
