package config

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeConfig(t *testing.T) {
	// значения из окружения приоритетнее флагов
	envConf := &Config{
		ServerAddress: "localhost:3000",
		BaseURL:       &url.URL{Scheme: "https", Host: "env.example.com"},
	}
	flagsConf := &Config{
		ServerAddress: "localhost:8080",
		BaseURL:       &url.URL{Scheme: "http", Host: "flag.example.com"},
	}

	conf := mergeConfig(envConf, flagsConf)
	require.Equal(t, "localhost:3000", conf.ServerAddress)
	require.Equal(t, "https://env.example.com", conf.BaseURL.String())

	conf = mergeConfig(&Config{}, flagsConf)
	require.Equal(t, "localhost:8080", conf.ServerAddress)
	require.Equal(t, "http://flag.example.com", conf.BaseURL.String())
}

func TestMergeConfig_NormalizesBaseURL(t *testing.T) {
	// Path и Query отсекаются независимо от источника значения
	tests := []struct {
		name    string
		envConf *Config
		flags   *Config
	}{
		{
			name: "from env",
			envConf: &Config{BaseURL: &url.URL{
				Scheme: "https", Host: "short.example.com", Path: "/api", RawQuery: "x=1",
			}},
			flags: &Config{},
		}, {
			name:    "from flags",
			envConf: &Config{},
			flags: &Config{BaseURL: &url.URL{
				Scheme: "https", Host: "short.example.com", Path: "/api", RawQuery: "x=1",
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := mergeConfig(tt.envConf, tt.flags)
			require.Equal(t, "https://short.example.com", conf.BaseURL.String())
		})
	}

	require.Nil(t, mergeConfig(&Config{}, &Config{}).BaseURL)
}
