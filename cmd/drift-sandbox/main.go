// Command drift-sandbox drives the raycast vehicle from the keyboard in a
// top-down terminal view with tire squeal
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/raycar/audio"
	"github.com/lixenwraith/raycar/config"
	"github.com/lixenwraith/raycar/curve"
	"github.com/lixenwraith/raycar/parameter"
	"github.com/lixenwraith/raycar/parameter/visual"
	"github.com/lixenwraith/raycar/sim"
	"github.com/lixenwraith/raycar/vehicle"
)

var (
	configFlag = flag.String("config", "", "Config file (toml, json or yaml)")
	muteFlag   = flag.Bool("mute", false, "Disable audio")
)

const (
	defaultZoom = 2.0
	minZoom     = 0.5
	maxZoom     = 8.0
)

type Sandbox struct {
	screen        tcell.Screen
	width, height int

	rig     *config.Rig
	runner  *sim.Runner
	size    mgl64.Vec3
	opacity curve.Curve
	skids   []skidCache

	controls *controls
	zoom     float64
	last     *vehicle.Report

	player *audio.Player
	log    zerolog.Logger
}

func NewSandbox(screen tcell.Screen, cfg *config.File, rig *config.Rig, player *audio.Player, log zerolog.Logger) *Sandbox {
	s := &Sandbox{
		screen:   screen,
		rig:      rig,
		size:     mgl64.Vec3{cfg.Body.Size[0], cfg.Body.Size[1], cfg.Body.Size[2]},
		opacity:  rig.Curves.Get(curve.SkidOpacity),
		skids:    make([]skidCache, rig.Vehicle.WheelCount()),
		controls: newControls(),
		zoom:     defaultZoom,
		player:   player,
		log:      log,
	}
	s.width, s.height = screen.Size()

	s.runner = sim.NewRunner(rig.Vehicle, rig.Body,
		sim.WithStep(cfg.Sim.Step),
		sim.WithMaxSubSteps(cfg.Sim.MaxSubSteps),
		sim.WithRunnerLogger(log),
	)
	s.runner.OnStep(s.onStep)
	return s
}

func (s *Sandbox) onStep(_ time.Duration, r *vehicle.Report) {
	s.last = r
	if len(r.SlideStarted) > 0 && s.player != nil {
		s.player.Chirp()
	}
}

// handleInput returns false when the user quits
func (s *Sandbox) handleInput(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			s.controls.press(actThrottle, now)
		case tcell.KeyDown:
			s.controls.press(actBrake, now)
		case tcell.KeyLeft:
			s.controls.press(actLeft, now)
		case tcell.KeyRight:
			s.controls.press(actRight, now)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'w':
				s.controls.press(actThrottle, now)
			case 's':
				s.controls.press(actBrake, now)
			case 'a':
				s.controls.press(actLeft, now)
			case 'd':
				s.controls.press(actRight, now)
			case ' ':
				s.controls.releaseAll()
			case 'c':
				s.rig.Vehicle.ClearSkidmarks()
			case '+', '=':
				s.zoom = min(s.zoom*1.25, maxZoom)
			case '-':
				s.zoom = max(s.zoom/1.25, minZoom)
			}
		}

	case *tcell.EventResize:
		s.width, s.height = s.screen.Size()
		s.screen.Sync()
	}
	return true
}

// update feeds held keys to the vehicle and advances physics by frame
func (s *Sandbox) update(now time.Time, frame time.Duration) {
	s.rig.Vehicle.SetInput(s.controls.input(now))
	s.runner.Advance(frame)
	if s.player != nil && s.last != nil {
		s.player.SetSlide(s.last.SlidingFraction())
	}
}

func (s *Sandbox) camera() camera {
	return camera{
		center: s.rig.Body.State().Position,
		scale:  s.zoom,
		width:  s.width,
		height: s.height - 1,
	}
}

func (s *Sandbox) statusLine() string {
	v := s.rig.Vehicle
	in := v.Input()
	slip, sliding := 0.0, 0
	if s.last != nil {
		slip = s.last.MaxSlip()
		sliding = s.last.SlidingCount()
	}
	return fmt.Sprintf("%5.1f m/s slip %.2f slide %d/%d thr %.0f brk %.0f str %+.0f | wasd c clear +/- zoom q quit",
		v.Speed(), slip, sliding, v.WheelCount(), in.Throttle, in.Brake, in.Steer())
}

func (s *Sandbox) draw() {
	s.screen.Fill(' ', background())
	cam := s.camera()

	drawGrid(s.screen, cam)
	for i := 0; i < s.rig.Vehicle.WheelCount(); i++ {
		drawSkids(s.screen, cam, s.rig.Vehicle.Skidmarks(i), s.opacity, &s.skids[i])
	}
	drawBody(s.screen, cam, s.rig.Vehicle, s.size)
	drawText(s.screen, 0, s.height-1, s.statusLine(), background().Foreground(visual.RgbStatus))
}

func (s *Sandbox) run() {
	ticker := time.NewTicker(parameter.FrameUpdateInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(s.screen, eventChan, done)

	lastFrame := time.Now()
	for {
		select {
		case ev := <-eventChan:
			if !s.handleInput(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			s.update(now, now.Sub(lastFrame))
			lastFrame = now
			s.draw()
			s.screen.Show()
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done closes
func pollEvents(screen tcell.Screen, out chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case out <- ev:
		case <-done:
			return
		}
	}
}

func openLog(cfg *config.File) (zerolog.Logger, *os.File, error) {
	dir := cfg.LogsDir
	if dir == "" {
		dir = parameter.LogDir
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return zerolog.Nop(), nil, err
	}
	file, err := os.OpenFile(filepath.Join(dir, "drift-sandbox.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(file).Level(level).With().Timestamp().Logger(), file, nil
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, logFile, err := openLog(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	rig, err := cfg.Assemble(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build vehicle: %v\n", err)
		os.Exit(1)
	}

	audioCfg := audio.LoadConfig()
	if *muteFlag {
		audioCfg.Enabled = false
	}
	player := audio.NewPlayer(audioCfg)
	if err := player.Initialize(); err != nil {
		// Non-fatal, the sandbox runs silent
		log.Warn().Err(err).Msg("audio initialization failed")
	}
	defer player.Cleanup()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	defer screen.Fini()
	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\ndrift-sandbox crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	screen.HideCursor()
	NewSandbox(screen, cfg, rig, player, log).run()
}
