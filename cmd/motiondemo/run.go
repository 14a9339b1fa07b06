package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phanxgames/motion"
	"github.com/phanxgames/motion/ebitenhost"
)

//go:embed scene.yaml
var defaultScene []byte

var runCmd = &cobra.Command{
	Use:   "run [scene.yaml]",
	Short: "Play a scene",
	Long: `Mounts the scene (the built-in one when no file is given) and plays it in a
window. Scroll with the mouse wheel; R replays groups, T toggles text, D
toggles border disable, C flips border direction and P saves a screenshot.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd)
		if err != nil {
			return err
		}

		var (
			scene  *motion.SceneFile
			driver *motion.StepDriver
		)
		if len(args) > 0 {
			scene, err = motion.LoadSceneFile(args[0])
		} else {
			scene, err = motion.LoadScene(defaultScene)
		}
		if err != nil {
			return err
		}
		extra := scene.Presets
		if extra != "" && len(args) > 0 && !filepath.IsAbs(extra) {
			extra = filepath.Join(filepath.Dir(args[0]), extra)
		}
		reg, err := loadRegistry(cmd, extra)
		if err != nil {
			return err
		}

		stage := motion.NewStage(scene.Viewport, motion.WithLogger(logger), motion.WithRegistry(reg))
		if err := stage.Mount(scene); err != nil {
			return err
		}

		if path, _ := cmd.Flags().GetString("script"); path != "" {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read step script: %w", err)
			}
			driver, err = motion.LoadStepScript(data)
			if err != nil {
				return err
			}
			stage.SetStepDriver(driver)
		}

		debug, _ := cmd.Flags().GetBool("debug")
		if headless, _ := cmd.Flags().GetBool("headless"); headless {
			frames, _ := cmd.Flags().GetInt("frames")
			tps, _ := cmd.Flags().GetInt("tps")
			stage.SetDebugMode(debug)
			return runHeadless(cmd, stage, frames, tps)
		}

		showFPS, _ := cmd.Flags().GetBool("fps")
		shotDir, _ := cmd.Flags().GetString("screenshots")
		game := ebitenhost.NewGame(stage, ebitenhost.RunConfig{
			Title:         "motion demo",
			Width:         int(scene.Viewport.Width),
			Height:        int(scene.Viewport.Height),
			ShowFPS:       showFPS,
			Debug:         debug,
			Logger:        logger,
			ScreenshotDir: shotDir,
		})
		if driver != nil {
			captured := false
			game.SetUpdateFunc(func() error {
				if driver.Done() && !captured {
					captured = true
					if err := driver.Err(); err != nil {
						logger.Warn("step script", "err", err)
					}
					game.Screenshot("script-done")
				}
				return nil
			})
		}
		return game.Run()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("script", "", "JSON step script driving scrolls, hovers and toggles")
	runCmd.Flags().Bool("headless", false, "Run without a window and print the final state")
	runCmd.Flags().Int("frames", 600, "Frames to simulate in headless mode")
	runCmd.Flags().Int("tps", 60, "Ticks per second in headless mode")
	runCmd.Flags().Bool("debug", false, "Log per-frame stage stats at debug level")
	runCmd.Flags().Bool("fps", false, "Show FPS and TPS in the window")
	runCmd.Flags().String("screenshots", "screenshots", "Directory for screenshots; a step script saves one when it finishes")
}

// runHeadless advances the stage frame by frame and prints a summary of every
// animator.
func runHeadless(cmd *cobra.Command, stage *motion.Stage, frames, tps int) error {
	if tps <= 0 {
		return fmt.Errorf("tps must be positive, got %d", tps)
	}
	dt := float32(1.0 / float64(tps))
	for range frames {
		stage.Update(dt)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "elapsed %v\n", stage.Elapsed())
	for _, g := range stage.Groups() {
		st := g.State()
		fmt.Fprintf(out, "group  %-10s mode=%-15s target=%-9s settled=%-5t triggered=%-5t transitions=%d\n",
			st.Name, st.Mode, st.Target, st.Settled, st.Triggered, st.Transitions)
	}
	for _, t := range stage.Texts() {
		fmt.Fprintf(out, "text   segments=%-3d phase=%s\n", len(t.Segments()), t.Phase())
	}
	for _, b := range stage.Borders() {
		p := b.Position()
		fmt.Fprintf(out, "border progress=%.1f/%.1f pos=(%.1f,%.1f) disabled=%t frames=%d\n",
			b.Progress(), b.Length(), p.X, p.Y, b.Disabled(), b.Frames())
	}
	return nil
}
