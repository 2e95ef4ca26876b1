package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

const FunctionVersion = "artcom_v8.0_multi_gateway"

// Signing modes supported for the DOKU checkout contract.
const (
	SigningModeTokenB2B  = "token_b2b"
	SigningModeHexDigest = "hex_digest"
)

type (
	Config struct {
		App      App      `yaml:"app"      env-prefix:"APP_"`
		Logger   Logger   `yaml:"logger"   env-prefix:"LOGGER_"`
		HTTP     HTTP     `yaml:"http"     env-prefix:"HTTP_"`
		GRPC     GRPC     `yaml:"grpc"     env-prefix:"GRPC_"`
		Midtrans Midtrans `yaml:"midtrans" env-prefix:"MIDTRANS_"`
		Doku     Doku     `yaml:"doku"     env-prefix:"DOKU_"`
		Callback Callback `yaml:"callback" env-prefix:"CALLBACK_"`
		Notify   Notify   `yaml:"notify"   env-prefix:"NOTIFY_"`
		Kafka    Kafka    `yaml:"kafka"    env-prefix:"KAFKA_"`
		SQS      SQS      `yaml:"sqs"      env-prefix:"SQS_"`
		Env      string   `yaml:"env"      env:"ENV" env-default:"prod" validate:"oneof=local dev staging prod"`
	}

	App struct {
		Name            string `yaml:"name"             env:"NAME"             env-default:"artcom-pay"`
		FunctionVersion string `yaml:"function_version" env:"FUNCTION_VERSION" env-default:"artcom_v8.0_multi_gateway"`
		UserAgent       string `yaml:"user_agent"       env:"USER_AGENT"       env-default:"ArtCom-v8.0-multi-gateway"`
	}

	Logger struct {
		Level    string `yaml:"level"    env:"LEVEL"    env-default:"info" validate:"oneof=debug info warn error"`
		Filename string `yaml:"filename" env:"FILENAME"`
	}

	HTTP struct {
		Addr            string        `yaml:"addr"             env:"ADDR"             env-default:":8080"  validate:"required"`
		ReadTimeout     time.Duration `yaml:"read_timeout"     env:"READ_TIMEOUT"     env-default:"15s"    validate:"gte=10ms,lte=2m"`
		WriteTimeout    time.Duration `yaml:"write_timeout"    env:"WRITE_TIMEOUT"    env-default:"30s"    validate:"gte=10ms,lte=2m"`
		IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"IDLE_TIMEOUT"     env-default:"60s"    validate:"gte=10ms,lte=5m"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"    validate:"gte=10ms,lte=1m"`
		// Zero keeps the client default (no timeout).
		ClientTimeout time.Duration `yaml:"client_timeout" env:"CLIENT_TIMEOUT" env-default:"0s"`
	}

	GRPC struct {
		// Empty disables the gRPC listener.
		Addr        string `yaml:"addr"         env:"ADDR"`
		MetricsAddr string `yaml:"metrics_addr" env:"METRICS_ADDR"`
	}

	Midtrans struct {
		ServerKey string `yaml:"server_key" env:"SERVER_KEY" validate:"required"`
		SnapURL   string `yaml:"snap_url"   env:"SNAP_URL"   env-default:"https://app.midtrans.com/snap/v1/transactions" validate:"url"`
		ChargeURL string `yaml:"charge_url" env:"CHARGE_URL" env-default:"https://api.midtrans.com/v2/charge"             validate:"url"`
	}

	Doku struct {
		ClientID  string `yaml:"client_id"  env:"CLIENT_ID"`
		SecretKey string `yaml:"secret_key" env:"SECRET_KEY"`
		// PEM, PKCS#1 or PKCS#8. Literal "\n" sequences are accepted.
		PrivateKey    string `yaml:"private_key"    env:"PRIVATE_KEY"`
		PaymentURL    string `yaml:"payment_url"    env:"PAYMENT_URL"    env-default:"https://api.doku.com/checkout/v1/payment"                validate:"url"`
		TokenURL      string `yaml:"token_url"      env:"TOKEN_URL"      env-default:"https://api.doku.com/authorization/v1/access-token/b2b" validate:"url"`
		RequestTarget string `yaml:"request_target" env:"REQUEST_TARGET" env-default:"/checkout/v1/payment"                                   validate:"startswith=/"`
		SigningMode   string `yaml:"signing_mode"   env:"SIGNING_MODE"   env-default:"token_b2b"                                              validate:"oneof=token_b2b hex_digest"`
		RequestPrefix string `yaml:"request_prefix" env:"REQUEST_PREFIX" env-default:"ARTCOM"`
	}

	Callback struct {
		Secret         string `yaml:"secret"          env:"SECRET"          env-default:"ARTCOM_CALLBACK_SECRET_2024" validate:"required"`
		ProductionBase string `yaml:"production_base" env:"PRODUCTION_BASE" env-default:"https://artcomdesign3-umbac.wpcomstaging.com"                validate:"url"`
		TestBase       string `yaml:"test_base"       env:"TEST_BASE"       env-default:"https://nextpays1staging.wpcomstaging.com"                   validate:"url"`
		DirectURL      string `yaml:"direct_url"      env:"DIRECT_URL"      env-default:"https://www.artcom.design/webhook/payment_complete.php"      validate:"url"`
	}

	Notify struct {
		NextPayURL     string `yaml:"nextpay_url"      env:"NEXTPAY_URL"      env-default:"https://nextpays.de/webhook/midtrans.php"       validate:"url"`
		NextPayTestURL string `yaml:"nextpay_test_url" env:"NEXTPAY_TEST_URL" env-default:"https://nextpays1.de/webhook/midtrans.php"      validate:"url"`
		DefaultURL     string `yaml:"default_url"      env:"DEFAULT_URL"      env-default:"https://www.artcom.design/webhook/midtrans.php" validate:"url"`
		UserAgent      string `yaml:"user_agent"       env:"USER_AGENT"       env-default:"ArtCom-Payment-Function-v8.0-multi-gateway"`
		// Async detaches notifications from the request instead of awaiting them.
		Async bool `yaml:"async" env:"ASYNC" env-default:"false"`
	}

	Kafka struct {
		Brokers []string `yaml:"brokers"      env:"BROKERS"      env-separator:"," validate:"omitempty,dive,hostname_port"`
		Topic   string   `yaml:"events_topic" env:"EVENTS_TOPIC" env-default:"payments.initiated"`
	}

	SQS struct {
		QueueURL  string `yaml:"queue_url"  env:"QUEUE_URL"  validate:"omitempty,url"`
		Region    string `yaml:"region"     env:"REGION"     env-default:"ap-southeast-1"`
		AccessKey string `yaml:"access_key" env:"ACCESS_KEY"`
		Secret    string `yaml:"secret"     env:"SECRET"`
	}
)

// DokuPrivateKeyPEM returns the configured key with literal "\n" sequences
// expanded, which is how multi-line keys survive single-line env vars.
func (d Doku) DokuPrivateKeyPEM() string {
	if strings.TrimSpace(d.PrivateKey) == "" {
		return ""
	}
	return strings.ReplaceAll(d.PrivateKey, `\n`, "\n")
}

// Load reads CONFIG_PATH (YAML) when set, otherwise the environment alone.
func Load() (*Config, error) {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return LoadPath(path)
	}
	return LoadEnv()
}

func LoadEnv() (*Config, error) {
	const op = "config.LoadEnv"

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: read env: %w", op, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// LoadCallback reads only the callback settings, for tools that inspect
// tokens without the gateway credentials.
func LoadCallback() (Callback, error) {
	const op = "config.LoadCallback"

	var wrap struct {
		Callback Callback `env-prefix:"CALLBACK_"`
	}
	if err := cleanenv.ReadEnv(&wrap); err != nil {
		return Callback{}, fmt.Errorf("%s: read env: %w", op, err)
	}
	return wrap.Callback, nil
}

func LoadPath(configPath string) (*Config, error) {
	const op = "config.LoadPath"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
	} else if err != nil {
		return nil, fmt.Errorf("%s: checking config file: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: read config: %w", op, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, ve := range validationErrs {
				msgs = append(msgs, fmt.Sprintf("%s=%v must satisfy '%s'", ve.Namespace(), redact(ve), ve.Tag()))
			}
			return fmt.Errorf("config validation: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}

func redact(fe validator.FieldError) any {
	switch fe.Field() {
	case "ServerKey", "SecretKey", "PrivateKey", "Secret":
		return "<redacted>"
	}
	return fe.Value()
}
