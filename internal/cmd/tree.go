package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/dendrascience/toolbox/rng"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewTreeCmd creates the tree subcommand.
// It generates a tree of fixture files with a randomized directory structure.
func NewTreeCmd(e *env) *cobra.Command {
	var (
		outputPath string
		fileCount  int
		seed       string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Generate fixture files with a randomized directory structure",
		Long: `Generate test files for exercising walk and other file tools.

Creates files in a YYYY/MM/DD/HH directory structure. Most files land at
the deepest level. Each file contains a single UUID line. With --seed the
layout is reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gen := rng.Default()
			if seed != "" {
				seq, err := rng.GenerateSeededNumbers(rng.DefaultCount, seed)
				if err != nil {
					return err
				}
				state, _ := seq.Int64()
				gen = rng.New(rand.New(rand.NewPCG(uint64(state), treeStream)))
			}
			created, dirs, err := runTree(gen, outputPath, fileCount, e.logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d files in %d directories\n", created, dirs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 100, "Number of files to generate")
	cmd.Flags().StringVarP(&seed, "seed", "s", "", "Seed for a reproducible layout")

	cmd.MarkFlagRequired("output")

	return cmd
}

// treeStream is the fixed second PCG word for seeded trees.
const treeStream = 0x9e3779b97f4a7c15

func runTree(gen *rng.Generator, outputPath string, fileCount int, logger *zap.Logger) (int, int, error) {
	if fileCount < 0 {
		return 0, 0, errors.Errorf("count must not be negative, got %d", fileCount)
	}
	if err := os.MkdirAll(outputPath, 0755); err != nil {
		return 0, 0, errors.Wrap(err, "create output directory")
	}

	// Pool of 10 UUIDs used as file contents
	uuidPool := make([]string, 10)
	for i := range uuidPool {
		id, err := gen.GenerateUUID("xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx")
		if err != nil {
			return 0, 0, err
		}
		uuidPool[i] = id
	}

	filesCreated := 0
	dirFileCounts := make(map[string]int)
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for attempts := 0; filesCreated < fileCount; attempts++ {
		if attempts > fileCount*100 {
			return filesCreated, len(dirFileCounts), errors.Errorf("gave up after %d attempts", attempts)
		}
		hours, _ := gen.RandRange(0, 365*24-1)
		fileTime := baseTime.Add(time.Duration(hours) * time.Hour)

		// Determine directory level (most files at deepest level)
		parts := []string{
			outputPath,
			fmt.Sprintf("%04d", fileTime.Year()),
			fmt.Sprintf("%02d", fileTime.Month()),
			fmt.Sprintf("%02d", fileTime.Day()),
			fmt.Sprintf("%02d", fileTime.Hour()),
		}
		level, _ := gen.RandRange(0, 99)
		switch {
		case level < 10: // 10% at year level
			parts = parts[:2]
		case level < 20: // 10% at month level
			parts = parts[:3]
		case level < 40: // 20% at day level
			parts = parts[:4]
		}
		dirPath := filepath.Join(parts...)

		if err := os.MkdirAll(dirPath, 0755); err != nil {
			logger.Warn("failed to create directory", zap.String("path", dirPath), zap.Error(err))
			continue
		}

		name, _ := gen.GenerateUUID("xxxxxxxx")
		ext := ".json"
		if n, _ := gen.RandRange(0, 1); n == 1 {
			ext = ".txt"
		}
		filePath := filepath.Join(dirPath, name+ext)

		// Skip if file already exists
		if _, err := os.Stat(filePath); err == nil {
			continue
		}

		content := uuidPool[gen.IntN(len(uuidPool))] + "\n"
		if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
			return filesCreated, len(dirFileCounts), errors.Wrapf(err, "write %s", filePath)
		}

		dirFileCounts[dirPath]++
		filesCreated++
	}

	logger.Debug("generated tree",
		zap.String("path", outputPath),
		zap.Int("files", filesCreated),
		zap.Int("directories", len(dirFileCounts)))
	return filesCreated, len(dirFileCounts), nil
}
