package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devroutine/models"
)

func writeConfig(t *testing.T, body string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/devroutine.yaml", []byte(body), 0o644))
	return fs
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	s, err := Load(afero.NewMemMapFs(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), s)
	assert.Len(t, s.Dashboard.Routines, 4)
	assert.Equal(t, []string{"#7886C7", "#F4B6B6", "#4EA8DE", "#FFD43B"}, s.Dashboard.Palette)
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	fs := writeConfig(t, `
server:
  addr: "127.0.0.1:9090"
sessions:
  idleTimeout: 30m
rateLimit:
  trustProxyHeaders: true
dashboard:
  tip: "해시맵 조회는 평균 O(1)입니다."
  routines:
    - id: 7
      title: 운동
      icon: "🏃"
  deadlines:
    - date: "2026-01-05"
      title: 라인 면접
      type: interview
`)

	s, err := Load(fs, "/etc/devroutine.yaml")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", s.Server.Addr)
	assert.Equal(t, 30*time.Minute, s.Sessions.IdleTimeout.Duration)
	assert.Equal(t, 5*time.Minute, s.Sessions.CleanupInterval.Duration, "unset fields keep defaults")
	assert.True(t, s.RateLimit.TrustProxyHeaders)
	assert.Equal(t, 60, s.RateLimit.RequestsPerMinute, "unset fields keep defaults")
	assert.False(t, Default().RateLimit.TrustProxyHeaders)
	assert.Equal(t, "해시맵 조회는 평균 O(1)입니다.", s.Dashboard.Tip)
	assert.Equal(t, "DevRoutine", s.Dashboard.Title)
	require.Len(t, s.Dashboard.Routines, 1)
	assert.Equal(t, "운동", s.Dashboard.Routines[0].Title)

	cfg := s.DashboardConfig()
	require.Len(t, cfg.Deadlines, 1)
	assert.Equal(t, models.CalendarDate{Year: 2026, Month: time.January, Day: 5}, cfg.Deadlines[0].Date)
	assert.Equal(t, models.DeadlineInterview, cfg.Deadlines[0].Type)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.yaml")
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	fs := writeConfig(t, "server: [unclosed")
	_, err := Load(fs, "/etc/devroutine.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		want   error
	}{
		{"empty palette", func(s *Settings) { s.Dashboard.Palette = nil }, ErrEmptyPalette},
		{"bad color", func(s *Settings) { s.Dashboard.Palette = []string{"blue"} }, ErrInvalidColor},
		{"duplicate routine", func(s *Settings) {
			s.Dashboard.Routines = append(s.Dashboard.Routines, models.Routine{ID: 1, Title: "dup"})
		}, ErrDuplicateRoutine},
		{"unknown deadline type", func(s *Settings) {
			s.Dashboard.Deadlines = []DeadlineSettings{{Day: 3, Title: "x", Type: "party"}}
		}, ErrInvalidDeadline},
		{"bad deadline date", func(s *Settings) {
			s.Dashboard.Deadlines = []DeadlineSettings{{Date: "2025-13-40", Title: "x", Type: "basic"}}
		}, ErrInvalidDeadline},
		{"deadline without date or day", func(s *Settings) {
			s.Dashboard.Deadlines = []DeadlineSettings{{Title: "x", Type: "basic"}}
		}, ErrInvalidDeadline},
		{"zero idle timeout", func(s *Settings) { s.Sessions.IdleTimeout = Duration{} }, ErrInvalidTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(&s)
			assert.ErrorIs(t, s.Validate(), tt.want)
		})
	}
}

func TestDashboardConfig_Defaults(t *testing.T) {
	cfg := Default().DashboardConfig()

	assert.Equal(t, models.DefaultPalette, cfg.Palette)
	assert.Equal(t, 4, cfg.StreakDays)
	require.Len(t, cfg.Deadlines, 4)
	assert.True(t, cfg.Deadlines[0].Date.IsZero(), "day-only deadlines resolve at mount")
	assert.Equal(t, 19, cfg.Deadlines[0].Day)
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/from/env.yaml")

	assert.Equal(t, "/from/flag.yaml", ResolvePath("/from/flag.yaml"))
	assert.Equal(t, "/from/env.yaml", ResolvePath(""))

	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, "", ResolvePath(""))
}
