package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v6/osfs"
	"github.com/spf13/cobra"

	"poseloop/internal/domain"
	"poseloop/internal/repository"
	"poseloop/practice"
)

var ingestJobs uint

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest [folder...]",
	Short: "Import folders of image files as poses",
	Long: `Walk one or more folders, copy every decodable image into the
image store, and create a pose for each one. Keywords are derived from
the file name, plus any extras passed with --keywords.

Examples:
  poseloop ingest ./photos
  poseloop ingest --keywords standing,male --difficulty easy ./standing-set`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
			return err
		}
		for i, input := range args {
			fileInfo, err := os.Stat(input)
			if err != nil {
				return fmt.Errorf("on %dth argument: %w", i+1, err)
			}
			if !fileInfo.IsDir() {
				return fmt.Errorf("on %dth argument: must be a directory", i+1)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := openEnvironment(cmd)
		if err != nil {
			return err
		}
		defer db.Close()

		extraKeywords, _ := cmd.Flags().GetStringSlice("keywords")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		if !domain.Difficulty(difficulty).Valid() {
			return fmt.Errorf("unknown difficulty %q", difficulty)
		}

		if err := os.MkdirAll(cfg.ImagesDir, 0755); err != nil {
			return fmt.Errorf("failed to create images directory: %w", err)
		}
		store := practice.NewImageStore(osfs.New(cfg.ImagesDir))
		poses := repository.NewPoseRepository(db)

		files := make(chan string, 10) // pipeline

		var wg sync.WaitGroup
		worker := func() {
			defer wg.Done()
			for path := range files {
				m, err := practice.DecodeImage(path)
				if err != nil {
					log.Printf("Skipping %s: %v", path, err)
					continue
				}
				ref, err := store.PutImage(m)
				if err != nil {
					log.Printf("Storing %s: %v", path, err)
					continue
				}
				_, err = poses.Create(cmd.Context(), domain.Pose{
					ImageRef:   ref,
					Keywords:   append(keywordsFromFilename(path), extraKeywords...),
					Difficulty: domain.Difficulty(difficulty),
				})
				if err != nil {
					log.Printf("Recording %s: %v", path, err)
					continue
				}
				log.Printf("Ingested %s as %s", path, ref)
			}
		}
		for i := uint(0); i < ingestJobs; i++ {
			wg.Add(1)
			go worker()
		}

		for _, input := range args {
			err := filepath.WalkDir(input, func(path string, info fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if info.IsDir() {
					return nil
				}
				files <- path
				return nil
			})
			if err != nil {
				log.Printf("Walking %s: %v", input, err)
			}
		}
		close(files)
		wg.Wait()
		return nil
	},
}

// keywordsFromFilename splits "standing-arms-raised.png" into
// ["standing", "arms", "raised"].
func keywordsFromFilename(path string) []string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' ' || r == '.'
	})
	keywords := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			keywords = append(keywords, part)
		}
	}
	return keywords
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringSlice("keywords", nil, "Extra keywords applied to every ingested pose")
	ingestCmd.Flags().String("difficulty", "", "Difficulty applied to every ingested pose (easy, medium, hard)")
	ingestCmd.Flags().UintVarP(&ingestJobs, "jobs", "j", 4, "How many images to process in parallel")
}
