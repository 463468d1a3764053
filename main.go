package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/neural-field-go/internal/host/ebitenhost"
	"github.com/olivierh59500/neural-field-go/internal/host/headless"
	"github.com/olivierh59500/neural-field-go/internal/host/termhost"
	"github.com/olivierh59500/neural-field-go/internal/pointer"
	"github.com/olivierh59500/neural-field-go/internal/sim"
	"github.com/olivierh59500/neural-field-go/internal/theme"
)

const (
	logDir      = "logs"
	logFileName = "neural-field.log"
)

var (
	hostFlag     = flag.String("host", "window", "Host: window, term, headless")
	themeFlag    = flag.String("theme", "dark", "Theme: light, dark")
	fillFlag     = flag.String("fill", "", "Override particle colour (#rrggbb)")
	width        = flag.Int("width", 1280, "Surface width in pixels (window, headless)")
	height       = flag.Int("height", 720, "Surface height in pixels (window, headless)")
	seed         = flag.Int64("seed", 0, "Random seed (0 = time based)")
	tps          = flag.Int("tps", 60, "Frames per second")
	reseedResize = flag.Bool("recompute-on-resize", false, "Reseed the population when the surface resizes")
	useGrid      = flag.Bool("grid", false, "Use a spatial grid for chain-reaction neighbour queries")
	autopilot    = flag.Bool("autopilot", false, "Drive the pointer with noise when there is no real input")
	frames       = flag.Int("frames", 300, "Frames to run (headless)")
	outDir       = flag.String("out", "", "Write composited PNG frames to this directory (headless)")
	logEvery     = flag.Int("log-every", 0, "Log stats every N frames (0 = disabled)")
	debugFlag    = flag.Bool("debug", false, "Write logs to "+filepath.Join(logDir, logFileName))
)

func main() {
	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	if err := run(); err != nil {
		log.Printf("exit: %v", err)
		fmt.Fprintf(os.Stderr, "neural-field: %v\n", err)
		os.Exit(1)
	}
}

// setupLogging sends log output to a file when debug is set and discards it
// otherwise; the terminal host owns stdout.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create log dir: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func run() error {
	th, err := theme.Parse(*themeFlag)
	if err != nil {
		return err
	}
	pal, err := th.Palette().WithFill(*fillFlag)
	if err != nil {
		return err
	}

	s := *seed
	if s == 0 {
		s = time.Now().UnixNano()
	}
	log.Printf("starting: host=%s theme=%s seed=%d", *hostFlag, th, s)

	cfg := sim.Config{
		Palette:           pal,
		RecomputeOnResize: *reseedResize,
		Partition:         *useGrid,
		Rand:              rand.New(rand.NewSource(s)),
		LogEvery:          *logEvery,
	}
	var pilot *pointer.Autopilot
	if *autopilot {
		pilot = pointer.NewAutopilot(s)
	}

	switch *hostFlag {
	case "window":
		return runWindow(cfg, pilot)
	case "term":
		return runTerm(cfg, pilot)
	case "headless":
		return runHeadless(cfg, pilot, s)
	}
	return fmt.Errorf("unknown host %q", *hostFlag)
}

func runWindow(cfg sim.Config, pilot *pointer.Autopilot) error {
	host := ebitenhost.New(*width, *height, cfg.Palette)
	host.Autopilot = pilot

	c := sim.New(cfg)
	if err := c.Attach(host.Sim()); err != nil {
		// The window still opens; the field just stays empty.
		log.Printf("window: %v", err)
	}
	defer c.Detach()
	host.Stats = c.Stats

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Neural Field")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(*tps)

	if err := ebiten.RunGame(host); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return nil
}

func runTerm(cfg sim.Config, pilot *pointer.Autopilot) (err error) {
	host, err := termhost.New(cfg.Palette, *tps)
	if err != nil {
		return err
	}
	host.Autopilot = pilot

	// Restore the terminal before a panic reaches the user.
	defer func() {
		if r := recover(); r != nil {
			host.Close()
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()

	c := sim.New(cfg)
	if err := c.Attach(host.Sim()); err != nil {
		log.Printf("term: %v", err)
	}
	host.Run()
	c.Detach()
	host.Close()
	return nil
}

func runHeadless(cfg sim.Config, pilot *pointer.Autopilot, s int64) error {
	host := headless.New(*width, *height)
	host.SetFrameRate(*tps)
	cfg.Now = host.Now
	c := sim.New(cfg)
	if err := c.Attach(host.Sim()); err != nil {
		return err
	}
	defer c.Detach()

	if pilot == nil {
		// A still field is a dull benchmark; sweep the pointer anyway.
		pilot = pointer.NewAutopilot(s)
	}

	start := time.Now()
	for i := 0; i < *frames; i++ {
		host.EmitMove(pilot.Next(float64(*width), float64(*height)))
		if !host.Tick() {
			return fmt.Errorf("frame %d: nothing scheduled", i)
		}
		if *outDir != "" {
			path := filepath.Join(*outDir, fmt.Sprintf("frame-%05d.png", i))
			if err := host.SavePNG(path, cfg.Palette); err != nil {
				return err
			}
		}
	}
	elapsed := time.Since(start)

	st := c.Stats()
	fmt.Printf("%d frames in %v (%.2f ms/frame), %d particles, %d excited, %d links\n",
		st.Frames, elapsed.Round(time.Millisecond),
		float64(elapsed.Microseconds())/1000/float64(max(st.Frames, 1)),
		st.Particles, st.Excited, st.Links)
	return nil
}
