package gateway

import (
	"os"
	"strings"

	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Config is the static instance configuration, fixed at creation.
type Config struct {
	// PortID is the port this gateway is bound to on its own chain.
	PortID string `toml:"port_id"`

	// Admin is the address with exclusive rights over the allow list
	// and fee withdrawal. Only used to seed the persisted admin record
	// on first boot; afterwards the stored record is authoritative.
	Admin string `toml:"admin"`

	// Bech32Prefix is the address prefix of the local chain, used to
	// validate senders and recipients on this side of the channel.
	Bech32Prefix string `toml:"bech32_prefix"`

	// DefaultTimeout, in seconds, is applied to outbound packets whose
	// caller did not supply a deadline, measured from the block time of
	// the sending invocation.
	DefaultTimeout uint64 `toml:"default_timeout"`

	// DefaultGasLimit caps refund sub-calls for allow-list entries that
	// carry no gas limit of their own. Zero means uncapped.
	DefaultGasLimit uint64 `toml:"default_gas_limit"`

	// Commission is the fraction of every outbound transfer retained by
	// the gateway. Zero disables it.
	Commission decimal.Decimal `toml:"commission"`

	// DBDir and QueryAddr only matter to the standalone process.
	DBDir     string `toml:"db_dir"`
	QueryAddr string `toml:"query_addr"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.PortID) == "" {
		return sdkerrors.Wrap(ErrInvalidAddress, "port_id cannot be blank")
	}
	if strings.TrimSpace(c.Bech32Prefix) == "" {
		return sdkerrors.Wrap(ErrInvalidAddress, "bech32_prefix cannot be blank")
	}
	if err := validateAddress(c.Bech32Prefix, c.Admin); err != nil {
		return sdkerrors.Wrap(err, "admin")
	}
	if c.DefaultTimeout == 0 {
		return sdkerrors.Wrap(ErrInvalidAmount, "default_timeout must be positive")
	}
	if c.Commission.IsNegative() || c.Commission.GreaterThan(decimal.NewFromInt(1)) {
		return sdkerrors.Wrapf(ErrInvalidCommission, "got %s", c.Commission)
	}
	return nil
}

// LoadConfig reads a TOML config file from disk.
func LoadConfig(path string) (Config, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := toml.Unmarshal(bz, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}
