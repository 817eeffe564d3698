package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/matchboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "all_matches.csv")
				convey.So(cfg.DefaultCountries, convey.ShouldResemble, []string{"India", "Brazil", "Spain", "Argentina"})
				convey.So(cfg.TopMatches, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("MATCHBOARD_ADDR", ":8080")
			_ = os.Setenv("MATCHBOARD_DATA_PATH", "/data/results.xlsx")
			_ = os.Setenv("MATCHBOARD_TOP_MATCHES", "25")
			_ = os.Setenv("MATCHBOARD_LOG_FORMAT", "JSON")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from environment variables", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/data/results.xlsx")
				convey.So(cfg.TopMatches, convey.ShouldEqual, 25)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When default countries come from a comma separated env var", func() {
			_ = os.Setenv("MATCHBOARD_DEFAULT_COUNTRIES", "France, Germany ,,Italy")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then names should be split and trimmed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DefaultCountries, convey.ShouldResemble, []string{"France", "Germany", "Italy"})
			})
		})

		convey.Convey("When loading config from YAML file", func() {
			yamlContent := `
addr: ":9090"
data_path: "results.csv"
default_countries: ["Mexico", "Qatar"]
max_page_size: 50
`
			tmpFile := createTempFile(t, "config.yaml", yamlContent)
			_ = os.Setenv("MATCHBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "results.csv")
				convey.So(cfg.DefaultCountries, convey.ShouldResemble, []string{"Mexico", "Qatar"})
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 50)
				convey.So(cfg.TopMatches, convey.ShouldEqual, 10) // From defaults
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
top_matches: 5
`
			tmpFile := createTempFile(t, "config.yaml", yamlContent)
			_ = os.Setenv("MATCHBOARD_CONFIG", tmpFile)
			_ = os.Setenv("MATCHBOARD_ADDR", ":8080") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080") // Overridden by env
				convey.So(cfg.TopMatches, convey.ShouldEqual, 5) // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile(t, "config.yaml", `invalid: yaml: content: [`)
			_ = os.Setenv("MATCHBOARD_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("MATCHBOARD_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("MATCHBOARD_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("MATCHBOARD_TOP_MATCHES", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a .env file supplies values", func() {
			envFile := createTempFile(t, "matchboard.env", "MATCHBOARD_DATA_PATH=from-dotenv.csv\nMATCHBOARD_ADDR=:7000\n")
			_ = os.Setenv("MATCHBOARD_ENV_FILE", envFile)
			_ = os.Setenv("MATCHBOARD_ADDR", ":7100")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then they should apply without overriding the real environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataPath, convey.ShouldEqual, "from-dotenv.csv")
				convey.So(cfg.Addr, convey.ShouldEqual, ":7100")
			})
		})

		convey.Convey("When an explicit .env file is missing", func() {
			_ = os.Setenv("MATCHBOARD_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then loading should fail", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"MATCHBOARD_CONFIG",
		"MATCHBOARD_ENV_FILE",
		"MATCHBOARD_ADDR",
		"MATCHBOARD_LOG_LEVEL",
		"MATCHBOARD_LOG_FORMAT",
		"MATCHBOARD_DATA_PATH",
		"MATCHBOARD_DEFAULT_COUNTRIES",
		"MATCHBOARD_TOP_MATCHES",
		"MATCHBOARD_MAX_PAGE_SIZE",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
