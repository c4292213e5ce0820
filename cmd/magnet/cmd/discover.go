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
	"context"
	"encoding/json"
	"fmt"
	"os"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jt05610/magnet/compose"
	"github.com/jt05610/magnet/conformance"
	"github.com/jt05610/magnet/couch"
	"github.com/jt05610/magnet/env"
	"github.com/jt05610/magnet/eventlog"
	"github.com/jt05610/magnet/mine/amqpminer"
	"github.com/jt05610/magnet/pattern"
	"github.com/jt05610/magnet/rewrite"
	"github.com/jt05610/magnet/search"
)

var (
	logFile     string
	patternName string
	attribute   string
	selector    string
	outFile     string
	store       bool
	evaluate    bool
)

func loadLog(path string) eventlog.Log {
	df, err := os.Open(path)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = df.Close()
	}()
	var events eventlog.Log
	if err := json.NewDecoder(df).Decode(&events); err != nil {
		panic(fmt.Errorf("loading %s: %w", path, err))
	}
	return events
}

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover -l log.json -p IP-1",
	Short: "Discover a multi-agent model from an event log",
	Long: `Discover a multi-agent model from an event log. Each participant's
local model is mined by the external miner, validated against its view of
the chosen interface pattern, and merged into the composed model.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := zap.NewProduction()
		if err != nil {
			return err
		}
		defer func() {
			_ = logger.Sync()
		}()
		e := env.LoadEnv(logger)

		p, err := pattern.Get(patternName)
		if err != nil {
			return err
		}
		events := loadLog(logFile)

		conn, err := amqp.Dial(e.RabbitURI)
		if err != nil {
			return err
		}
		defer func() {
			_ = conn.Close()
		}()

		opts := compose.Options{
			Attribute: attribute,
			Limits:    search.Limits{MaxDepth: e.MaxDepth, MaxStates: e.MaxStates},
			Logger:    logger,
		}
		if selector != "" {
			sel, err := eventlog.ExprSelector(selector)
			if err != nil {
				return err
			}
			opts.Selector = sel
		}

		ctx := context.Background()
		miner := amqpminer.New(conn, e.MinerQueue, logger)
		res, err := compose.Discover(ctx, events, miner, p, rewrite.Catalog(), opts)
		if err != nil {
			return err
		}

		fmt.Printf("run %s: composed %s from %d participants (%d places, %d transitions)\n",
			res.RunID, res.Pattern, len(res.Participants), len(res.Net.Places), len(res.Net.Transitions))
		for _, part := range res.Participants {
			fmt.Printf("  %-12s role %-4s refined in %d steps\n", part.ID, part.Role, len(part.Witness.Steps))
		}

		if outFile != "" {
			saveNet(outFile, res.Net)
			fmt.Printf("wrote %s\n", outFile)
		}

		if store {
			s, err := couch.Open(e.CouchURI, e.CouchDB)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.Close()
			}()
			if _, err := s.Add(ctx, res); err != nil {
				return err
			}
			logger.Info("stored run", zap.String("run", res.RunID), zap.String("db", e.CouchDB))
		}

		if evaluate && e.ConformanceURI != "" {
			report, err := conformance.NewClient(e.ConformanceURI, conformance.WithLogger(logger)).
				Report(ctx, res.Net, events)
			if err != nil {
				return err
			}
			fmt.Printf("alignment fitness %s precision %s; entropy fitness %s precision %s\n",
				report.AlignmentFitness, report.AlignmentPrecision,
				report.EntropyFitness, report.EntropyPrecision)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().StringVarP(&logFile, "log", "l", "", "event log file (json)")
	discoverCmd.Flags().StringVarP(&patternName, "pattern", "p", "IP-1", "interface pattern")
	discoverCmd.Flags().StringVarP(&attribute, "attribute", "a", compose.DefaultAttribute, "participant attribute")
	discoverCmd.Flags().StringVar(&selector, "selector", "", "participant selector expression")
	discoverCmd.Flags().StringVarP(&outFile, "output", "o", "", "write the composed net to this file")
	discoverCmd.Flags().BoolVar(&store, "store", false, "store the run in couchdb")
	discoverCmd.Flags().BoolVar(&evaluate, "evaluate", false, "score the composed model")
}
