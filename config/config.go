package config

import (
	"crypto/ecdsa"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Reference rate: 1 ZEC = 0.00000000000001 STI.
const DefaultZECSTIRate = "0.00000000000001"

type Config struct {
	RPCURL         string        `mapstructure:"rpc_url"`
	PrivateKey     string        `mapstructure:"private_key"`
	PublicKey      string        `mapstructure:"public_key"`
	TokenAddress   string        `mapstructure:"token_address"`
	Port           string        `mapstructure:"port"`
	ZECSTIRate     string        `mapstructure:"zec_sti_rate"`
	ConfirmTimeout time.Duration `mapstructure:"confirm_timeout"`

	// derived at Load time, not read from the file
	Rate       decimal.Decimal   `mapstructure:"-"`
	SigningKey *ecdsa.PrivateKey `mapstructure:"-"`
}

// Load reads the optional YAML file at path, lets ENV override every key
// (rpc_url -> RPC_URL), then validates. Startup fails fast on anything
// missing or malformed.
func Load(path string) (*Config, error) {
	v := viper.New()

	// every key needs a default so env-only values survive Unmarshal
	v.SetDefault("rpc_url", "")
	v.SetDefault("private_key", "")
	v.SetDefault("public_key", "")
	v.SetDefault("token_address", "")
	v.SetDefault("port", "3000")
	v.SetDefault("zec_sti_rate", DefaultZECSTIRate)
	v.SetDefault("confirm_timeout", time.Duration(0))

	// ENV 覆盖 YAML
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{
		"rpc_url", "private_key", "public_key",
		"token_address", "port", "zec_sti_rate", "confirm_timeout",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			// the file is optional; ENV alone is a valid configuration
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("config: RPC_URL is required")
	}
	if c.PrivateKey == "" {
		return fmt.Errorf("config: PRIVATE_KEY is required")
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(c.PrivateKey, "0x"))
	if err != nil {
		return fmt.Errorf("config: PRIVATE_KEY is not a valid secp256k1 key: %w", err)
	}
	c.SigningKey = key

	if c.PublicKey == "" {
		return fmt.Errorf("config: PUBLIC_KEY is required")
	}
	if !common.IsHexAddress(c.PublicKey) {
		return fmt.Errorf("config: PUBLIC_KEY %q is not a valid address", c.PublicKey)
	}
	if c.TokenAddress == "" {
		return fmt.Errorf("config: TOKEN_ADDRESS is required")
	}
	if !common.IsHexAddress(c.TokenAddress) {
		return fmt.Errorf("config: TOKEN_ADDRESS %q is not a valid address", c.TokenAddress)
	}

	rate, err := decimal.NewFromString(c.ZECSTIRate)
	if err != nil {
		return fmt.Errorf("config: ZEC_STI_RATE %q is not a decimal: %w", c.ZECSTIRate, err)
	}
	if !rate.IsPositive() {
		return fmt.Errorf("config: ZEC_STI_RATE must be positive, got %q", c.ZECSTIRate)
	}
	c.Rate = rate
	return nil
}
