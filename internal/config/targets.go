package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/multierr"

	"github.com/hamed0406/watchtower/internal/domain"
)

// DefaultTimeoutSeconds applies when a target omits timeout_seconds.
const DefaultTimeoutSeconds = 10

var (
	ErrNoTargets     = errors.New("no targets configured")
	ErrInvalidTarget = errors.New("invalid target")
)

type targetEntry struct {
	Name           string `mapstructure:"name"`
	URL            string `mapstructure:"url"`
	TimeoutSeconds *int   `mapstructure:"timeout_seconds"`
}

type targetsFile struct {
	Domains []targetEntry `mapstructure:"domains"`
}

// LoadTargets reads the target list from path. The format follows the file
// extension (json, yaml, yml).
func LoadTargets(path string) ([]domain.Target, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read targets file %s: %w", path, err)
	}
	return decodeTargets(v)
}

// ParseTargets reads a target list of the given format ("json" or "yaml").
func ParseTargets(r io.Reader, format string) ([]domain.Target, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("parse targets: %w", err)
	}
	return decodeTargets(v)
}

func decodeTargets(v *viper.Viper) ([]domain.Target, error) {
	var f targetsFile
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("decode targets: %w", err)
	}
	if len(f.Domains) == 0 {
		return nil, ErrNoTargets
	}

	out := make([]domain.Target, 0, len(f.Domains))
	var errs error
	for i, e := range f.Domains {
		t, err := e.target()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("domains[%d]: %w", i, err))
			continue
		}
		out = append(out, t)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func (e targetEntry) target() (domain.Target, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return domain.Target{}, fmt.Errorf("%w: name is empty", ErrInvalidTarget)
	}
	if !isValidHTTPURL(e.URL) {
		return domain.Target{}, fmt.Errorf("%w: %s: url %q needs an http or https scheme and a host", ErrInvalidTarget, name, e.URL)
	}
	secs := DefaultTimeoutSeconds
	if e.TimeoutSeconds != nil {
		secs = *e.TimeoutSeconds
		if secs <= 0 {
			return domain.Target{}, fmt.Errorf("%w: %s: timeout_seconds must be positive, got %d", ErrInvalidTarget, name, secs)
		}
	}
	return domain.Target{
		Name:    name,
		URL:     strings.TrimSpace(e.URL),
		Timeout: time.Duration(secs) * time.Second,
	}, nil
}

func isValidHTTPURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	s := strings.ToLower(u.Scheme)
	return (s == "http" || s == "https") && u.Host != ""
}
