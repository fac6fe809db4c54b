package config

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/viper"

	"github.com/kava-labs/liquidation-queue/types"
)

// GenesisSimple is the genesis file layout, amounts and addresses as strings
type GenesisSimple struct {
	Config struct {
		Owner                string `mapstructure:"owner"`
		OracleContract       string `mapstructure:"oracle_contract"`
		StableDenom          string `mapstructure:"stable_denom"`
		SafeRatio            string `mapstructure:"safe_ratio"`
		BidFee               string `mapstructure:"bid_fee"`
		MinLiquidation       string `mapstructure:"min_liquidation"`
		LiquidationThreshold string `mapstructure:"liquidation_threshold"`
		PriceTimeframe       uint64 `mapstructure:"price_timeframe"`
		WaitingPeriod        uint64 `mapstructure:"waiting_period"`
	} `mapstructure:"config"`
	Collaterals []struct {
		CollateralToken    string `mapstructure:"collateral_token"`
		MaxSlot            uint8  `mapstructure:"max_slot"`
		PremiumRatePerSlot string `mapstructure:"premium_rate_per_slot"`
		BidThreshold       string `mapstructure:"bid_threshold"`
	} `mapstructure:"collaterals"`
	BidPools []struct {
		CollateralToken string `mapstructure:"collateral_token"`
		Slot            uint8  `mapstructure:"slot"`
		PremiumRate     string `mapstructure:"premium_rate"`
		TotalBidAmount  string `mapstructure:"total_bid_amount"`
		SumSnapshot     string `mapstructure:"sum_snapshot"`
		ProductSnapshot string `mapstructure:"product_snapshot"`
		CurrentEpoch    uint64 `mapstructure:"current_epoch"`
		CurrentScale    uint64 `mapstructure:"current_scale"`
	} `mapstructure:"bid_pools"`
	Bids []struct {
		Idx                         uint64  `mapstructure:"idx"`
		CollateralToken             string  `mapstructure:"collateral_token"`
		Bidder                      string  `mapstructure:"bidder"`
		Amount                      string  `mapstructure:"amount"`
		PremiumSlot                 uint8   `mapstructure:"premium_slot"`
		PendingLiquidatedCollateral string  `mapstructure:"pending_liquidated_collateral"`
		ProductSnapshot             string  `mapstructure:"product_snapshot"`
		SumSnapshot                 string  `mapstructure:"sum_snapshot"`
		EpochSnapshot               uint64  `mapstructure:"epoch_snapshot"`
		ScaleSnapshot               uint64  `mapstructure:"scale_snapshot"`
		WaitEnd                     *uint64 `mapstructure:"wait_end"`
	} `mapstructure:"bids"`
}

// LoadGenesis reads a toml, yaml or json genesis file, the format is taken
// from the extension. The result is validated.
func LoadGenesis(path string) (types.GenesisState, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return types.GenesisState{}, err
	}

	var temp GenesisSimple
	if err := v.Unmarshal(&temp); err != nil {
		return types.GenesisState{}, err
	}

	gs, err := temp.ToGenesisState()
	if err != nil {
		return types.GenesisState{}, fmt.Errorf("invalid genesis %s: %w", path, err)
	}
	if err := gs.Validate(); err != nil {
		return types.GenesisState{}, fmt.Errorf("invalid genesis %s: %w", path, err)
	}
	return gs, nil
}

// ToGenesisState decodes every field. Missing amounts are zero and missing
// snapshots are those of a fresh pool.
func (g GenesisSimple) ToGenesisState() (types.GenesisState, error) {
	p := parser{}

	gs := types.GenesisState{
		Config: types.Config{
			Owner:                p.address("config.owner", g.Config.Owner),
			OracleContract:       p.optionalAddress("config.oracle_contract", g.Config.OracleContract),
			StableDenom:          g.Config.StableDenom,
			SafeRatio:            p.dec("config.safe_ratio", g.Config.SafeRatio, sdk.ZeroDec()),
			BidFee:               p.dec("config.bid_fee", g.Config.BidFee, sdk.ZeroDec()),
			MinLiquidation:       p.integer("config.min_liquidation", g.Config.MinLiquidation),
			LiquidationThreshold: p.integer("config.liquidation_threshold", g.Config.LiquidationThreshold),
			PriceTimeframe:       g.Config.PriceTimeframe,
			WaitingPeriod:        g.Config.WaitingPeriod,
		},
		Collaterals: []types.CollateralInfo{},
		BidPools:    []types.BidPoolEntry{},
		Bids:        []types.Bid{},
	}

	for i, c := range g.Collaterals {
		field := fmt.Sprintf("collaterals[%d]", i)
		gs.Collaterals = append(gs.Collaterals, types.CollateralInfo{
			CollateralToken:    p.address(field+".collateral_token", c.CollateralToken),
			MaxSlot:            c.MaxSlot,
			PremiumRatePerSlot: p.dec(field+".premium_rate_per_slot", c.PremiumRatePerSlot, sdk.ZeroDec()),
			BidThreshold:       p.integer(field+".bid_threshold", c.BidThreshold),
		})
	}

	fresh := types.NewPoolSnapshot()
	for i, bp := range g.BidPools {
		field := fmt.Sprintf("bid_pools[%d]", i)
		gs.BidPools = append(gs.BidPools, types.BidPoolEntry{
			CollateralToken: p.address(field+".collateral_token", bp.CollateralToken),
			Slot:            bp.Slot,
			BidPool: types.BidPool{
				SumSnapshot:     p.dec(field+".sum_snapshot", bp.SumSnapshot, fresh.Sum),
				ProductSnapshot: p.dec(field+".product_snapshot", bp.ProductSnapshot, fresh.Product),
				TotalBidAmount:  p.integer(field+".total_bid_amount", bp.TotalBidAmount),
				PremiumRate:     p.dec(field+".premium_rate", bp.PremiumRate, sdk.ZeroDec()),
				CurrentEpoch:    bp.CurrentEpoch,
				CurrentScale:    bp.CurrentScale,
			},
		})
	}

	for i, b := range g.Bids {
		field := fmt.Sprintf("bids[%d]", i)
		gs.Bids = append(gs.Bids, types.Bid{
			Idx:                         b.Idx,
			CollateralToken:             p.address(field+".collateral_token", b.CollateralToken),
			Bidder:                      p.address(field+".bidder", b.Bidder),
			Amount:                      p.integer(field+".amount", b.Amount),
			PremiumSlot:                 b.PremiumSlot,
			PendingLiquidatedCollateral: p.integer(field+".pending_liquidated_collateral", b.PendingLiquidatedCollateral),
			ProductSnapshot:             p.dec(field+".product_snapshot", b.ProductSnapshot, fresh.Product),
			SumSnapshot:                 p.dec(field+".sum_snapshot", b.SumSnapshot, fresh.Sum),
			EpochSnapshot:               b.EpochSnapshot,
			ScaleSnapshot:               b.ScaleSnapshot,
			WaitEnd:                     b.WaitEnd,
		})
	}

	if p.err != nil {
		return types.GenesisState{}, p.err
	}
	return gs, nil
}

// parser keeps the first decoding error so conversions can be chained
type parser struct {
	err error
}

func (p *parser) address(field, s string) sdk.AccAddress {
	if p.err != nil {
		return nil
	}
	addr, err := sdk.AccAddressFromBech32(s)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", field, err)
		return nil
	}
	return addr
}

func (p *parser) optionalAddress(field, s string) sdk.AccAddress {
	if s == "" {
		return sdk.AccAddress{}
	}
	return p.address(field, s)
}

func (p *parser) dec(field, s string, fallback sdk.Dec) sdk.Dec {
	if p.err != nil || s == "" {
		return fallback
	}
	d, err := sdk.NewDecFromStr(s)
	if err != nil {
		p.err = fmt.Errorf("%s: %w", field, err)
		return fallback
	}
	return d
}

func (p *parser) integer(field, s string) sdk.Int {
	if p.err != nil || s == "" {
		return sdk.ZeroInt()
	}
	i, ok := sdk.NewIntFromString(s)
	if !ok {
		p.err = fmt.Errorf("%s: %q is not an integer", field, s)
		return sdk.ZeroInt()
	}
	return i
}
