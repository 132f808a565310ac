package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"devroutine/models"
	"devroutine/services/dashboard"
)

// EnvConfigPath names the environment variable holding the settings file path.
const EnvConfigPath = "DEVROUTINE_CONFIG"

var (
	ErrEmptyPalette     = errors.New("dashboard palette is empty")
	ErrInvalidColor     = errors.New("invalid palette color")
	ErrInvalidDeadline  = errors.New("invalid deadline")
	ErrDuplicateRoutine = errors.New("duplicate routine id")
	ErrInvalidTimeout   = errors.New("timeouts must be positive")
)

// Duration accepts Go duration strings ("90s", "2h") in YAML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

type ServerSettings struct {
	Addr          string   `yaml:"addr"`
	ReadTimeout   Duration `yaml:"readTimeout"`
	WriteTimeout  Duration `yaml:"writeTimeout"`
	ShutdownGrace Duration `yaml:"shutdownGrace"`
}

type SessionSettings struct {
	IdleTimeout     Duration `yaml:"idleTimeout"`
	CleanupInterval Duration `yaml:"cleanupInterval"`
	MaxSessions     int      `yaml:"maxSessions"`
}

// RateLimitSettings configures the per-IP limiter. TrustProxyHeaders keys
// clients by X-Forwarded-For / X-Real-IP and should only be enabled behind a
// reverse proxy that sets those headers itself.
type RateLimitSettings struct {
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
	TrustProxyHeaders bool `yaml:"trustProxyHeaders"`
}

type CORSSettings struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

type LogSettings struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxBackups int    `yaml:"maxBackups"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

// DeadlineSettings configures one deadline. Either Date (YYYY-MM-DD) or Day
// (day of the month the dashboard is opened in) must be set.
type DeadlineSettings struct {
	Date  string `yaml:"date,omitempty"`
	Day   int    `yaml:"day,omitempty"`
	Title string `yaml:"title"`
	Type  string `yaml:"type"`
}

type DashboardSettings struct {
	Title         string             `yaml:"title"`
	Subtitle      string             `yaml:"subtitle"`
	StreakDays    int                `yaml:"streakDays"`
	Tip           string             `yaml:"tip"`
	Message       string             `yaml:"message"`
	Palette       []string           `yaml:"palette"`
	Routines      []models.Routine   `yaml:"routines"`
	Deadlines     []DeadlineSettings `yaml:"deadlines"`
	UpcomingLimit int                `yaml:"upcomingLimit"`
}

// Settings is the whole service configuration.
type Settings struct {
	Server    ServerSettings    `yaml:"server"`
	Sessions  SessionSettings   `yaml:"sessions"`
	RateLimit RateLimitSettings `yaml:"rateLimit"`
	CORS      CORSSettings      `yaml:"cors"`
	Log       LogSettings       `yaml:"log"`
	Dashboard DashboardSettings `yaml:"dashboard"`
}

// Default returns the built-in settings, including the sample routines,
// deadlines and messages shown on a fresh dashboard.
func Default() Settings {
	palette := make([]string, len(models.DefaultPalette))
	for i, c := range models.DefaultPalette {
		palette[i] = string(c)
	}

	return Settings{
		Server: ServerSettings{
			Addr:          ":8080",
			ReadTimeout:   Duration{15 * time.Second},
			WriteTimeout:  Duration{15 * time.Second},
			ShutdownGrace: Duration{10 * time.Second},
		},
		Sessions: SessionSettings{
			IdleTimeout:     Duration{2 * time.Hour},
			CleanupInterval: Duration{5 * time.Minute},
			MaxSessions:     1000,
		},
		RateLimit: RateLimitSettings{
			RequestsPerMinute: 60,
			Burst:             20,
		},
		Log: LogSettings{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Dashboard: DashboardSettings{
			Title:      "DevRoutine",
			Subtitle:   "취준생을 위한 루틴 트래커",
			StreakDays: 4,
			Tip:        "배열은 메모리의 연속된 공간에 저장되므로 인덱스 접근이 O(1)로 빠릅니다.",
			Message:    "이번 주도 잘 해냈어요. 계속 나아가세요! 💪",
			Palette:    palette,
			Routines: []models.Routine{
				{ID: 1, Title: "CS 공부", Completed: true, Icon: "💻"},
				{ID: 2, Title: "코딩테스트", Completed: true, Icon: "⌨️"},
				{ID: 3, Title: "자기소개서 작성", Completed: false, Icon: "📝"},
				{ID: 4, Title: "알고리즘 문제풀이", Completed: false, Icon: "🧩"},
			},
			Deadlines: []DeadlineSettings{
				{Day: 19, Title: "카카오 서류 마감", Type: string(models.DeadlineDocument)},
				{Day: 18, Title: "네이버 코테", Type: string(models.DeadlineCoding)},
				{Day: 22, Title: "토스 면접", Type: string(models.DeadlineInterview)},
				{Day: 16, Title: "자격증 시험", Type: string(models.DeadlineBasic)},
			},
			UpcomingLimit: dashboard.DefaultUpcomingLimit,
		},
	}
}

// ResolvePath picks the settings file: the flag value, else $DEVROUTINE_CONFIG.
// An empty result means built-in defaults only.
func ResolvePath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(EnvConfigPath))
}

// Load reads path from fs on top of Default and validates the result.
// An empty path returns the defaults.
func Load(fs afero.Fs, path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, s.Validate()
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config %s: %w", path, err)
	}
	return s, nil
}

// Validate checks the settings for values the service cannot run with.
func (s Settings) Validate() error {
	if s.Sessions.IdleTimeout.Duration <= 0 || s.Server.ShutdownGrace.Duration <= 0 {
		return ErrInvalidTimeout
	}

	d := s.Dashboard
	if len(d.Palette) == 0 {
		return ErrEmptyPalette
	}
	for _, c := range d.Palette {
		if !models.Color(c).Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidColor, c)
		}
	}

	seen := make(map[int]bool, len(d.Routines))
	for _, r := range d.Routines {
		if seen[r.ID] {
			return fmt.Errorf("%w: %d", ErrDuplicateRoutine, r.ID)
		}
		seen[r.ID] = true
	}

	for i, dl := range d.Deadlines {
		if _, err := dl.spec(); err != nil {
			return fmt.Errorf("deadline %d (%q): %w", i, dl.Title, err)
		}
	}
	return nil
}

func (dl DeadlineSettings) spec() (dashboard.DeadlineSpec, error) {
	spec := dashboard.DeadlineSpec{
		Day:   dl.Day,
		Title: strings.TrimSpace(dl.Title),
		Type:  models.DeadlineType(strings.ToLower(strings.TrimSpace(dl.Type))),
	}
	if spec.Title == "" {
		return spec, fmt.Errorf("%w: title is required", ErrInvalidDeadline)
	}
	if !spec.Type.Valid() {
		return spec, fmt.Errorf("%w: unknown type %q", ErrInvalidDeadline, dl.Type)
	}

	switch {
	case dl.Date != "":
		date, err := models.ParseCalendarDate(dl.Date)
		if err != nil {
			return spec, fmt.Errorf("%w: %v", ErrInvalidDeadline, err)
		}
		spec.Date = date
	case dl.Day < 1 || dl.Day > 31:
		return spec, fmt.Errorf("%w: day must be 1-31 when no date is given", ErrInvalidDeadline)
	}
	return spec, nil
}

// DashboardConfig converts the dashboard section into the config every
// mounted dashboard is created with. Settings must have passed Validate.
func (s Settings) DashboardConfig() dashboard.Config {
	d := s.Dashboard

	palette := make(models.Palette, 0, len(d.Palette))
	for _, c := range d.Palette {
		palette = append(palette, models.Color(strings.ToUpper(c)))
	}

	specs := make([]dashboard.DeadlineSpec, 0, len(d.Deadlines))
	for _, dl := range d.Deadlines {
		spec, err := dl.spec()
		if err != nil {
			continue
		}
		specs = append(specs, spec)
	}

	routines := make([]models.Routine, len(d.Routines))
	copy(routines, d.Routines)

	return dashboard.Config{
		Title:         d.Title,
		Subtitle:      d.Subtitle,
		StreakDays:    d.StreakDays,
		Tip:           d.Tip,
		Message:       d.Message,
		Palette:       palette,
		Routines:      routines,
		Deadlines:     specs,
		UpcomingLimit: d.UpcomingLimit,
	}
}
