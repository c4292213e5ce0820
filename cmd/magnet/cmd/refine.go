/*
Copyright © 2024 Jonathan Taylor <jonrtaylor12@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jt05610/magnet/rewrite"
	"github.com/jt05610/magnet/search"
)

var (
	startFile string
	maxDepth  int
	maxStates int
)

// refineCmd represents the refine command
var refineCmd = &cobra.Command{
	Use:   "refine -s view.yaml -i local.yaml",
	Short: "Check that a local model refines an interface view",
	Long: `Check that a local model refines an interface view by searching for
a transformation sequence from the view to the model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start := loadNet(startFile)
		target := loadNet(inputFile)
		witness, err := search.Refine(start, target, rewrite.Catalog(), search.Limits{
			MaxDepth:  maxDepth,
			MaxStates: maxStates,
		})
		var refuted *search.NotRefinementError
		var budget *search.BudgetExceededError
		switch {
		case errors.As(err, &refuted):
			fmt.Printf("refuted: %v\n", err)
			return err
		case errors.As(err, &budget):
			fmt.Printf("undecided: %v\n", err)
			return err
		case err != nil:
			return err
		}
		fmt.Printf("%s refines %s in %d steps (%d nets explored)\n",
			target.ID, start.ID, len(witness.Steps), witness.Explored)
		for i, step := range witness.Steps {
			fmt.Printf("%2d. %s at %s\n", i+1, step.Rule, step.Anchor)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refineCmd)
	refineCmd.Flags().StringVarP(&startFile, "start", "s", "", "interface view file")
	refineCmd.Flags().StringVarP(&inputFile, "input", "i", "", "local model file")
	refineCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "maximum search depth")
	refineCmd.Flags().IntVar(&maxStates, "max-states", 0, "maximum explored nets")
}
