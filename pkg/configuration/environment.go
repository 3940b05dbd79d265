package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/taskboard/pkg/logging"
)

const Production = "production"

// TransitionPolicy selects what happens to a status change when no
// explicit rule is configured for the (type, from, to) triple.
type TransitionPolicy string

const (
	TransitionPolicyPermissive  TransitionPolicy = "permissive"
	TransitionPolicyRestrictive TransitionPolicy = "restrictive"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fs.FileExists(file) {
			existingFiles = append(existingFiles, file)
		}
	}
	if len(existingFiles) == 0 {
		return 0, nil
	}
	return len(existingFiles), godotenv.Load(existingFiles...)
}

type DatabaseOptions struct {
	Opts     string `env:"-"`
	Name     string `env:"DB_NAME" envDefault:"taskboard"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type WorkItemOptions struct {
	// Default policy applied when no transition rule exists for a
	// (type, from, to) triple. One global switch, not per-type.
	TransitionPolicy TransitionPolicy `env:"WORKITEM_TRANSITION_POLICY" envDefault:"permissive"`
}

func (w *WorkItemOptions) Validate() error {
	switch w.TransitionPolicy {
	case TransitionPolicyPermissive, TransitionPolicyRestrictive:
		return nil
	}
	return fmt.Errorf("workitem transition policy must be 'permissive' or 'restrictive', got '%s'", w.TransitionPolicy)
}

type Configuration struct {
	Database DatabaseOptions
	WorkItem WorkItemOptions

	GoAppEnvironment   string        `env:"GO_APP_ENV" envDefault:"development"`
	ServerPort         int           `env:"PORT" envDefault:"3200"`
	SocketAddress      string        `env:"-"`
	PageSize           int           `env:"PAGE_SIZE" envDefault:"25"`
	MaxPageSize        int           `env:"MAX_PAGE_SIZE" envDefault:"100"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"error"`
	LogPath            string        `env:"LOG_PATH" envDefault:"./logs/app.log"`
	SlowQueryThreshold time.Duration `env:"SLOW_QUERY_THRESHOLD" envDefault:"500ms"`
	AuditLogEnabled    bool          `env:"AUDIT_LOG_ENABLED" envDefault:"true"`
	RunMigrations      bool          `env:"RUN_MIGRATIONS" envDefault:"false"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}

	if err := c.WorkItem.Validate(); err != nil {
		return fmt.Errorf("work item configuration error: %w", err)
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.LogPath)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	c.Database.Opts = c.Database.ConnectionString()
	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}
	return nil
}

func (c *Configuration) Unload() {
	if c.logFile != nil {
		_ = c.logFile.Close()
	}
}
