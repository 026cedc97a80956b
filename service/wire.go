package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(LedgerService), "*"),
	wire.Bind(new(ILedgerService), new(*LedgerService)),

	wire.Struct(new(RewardsService), "*"),
	wire.Bind(new(IRewardsService), new(*RewardsService)),

	wire.Struct(new(RedemptionService), "*"),
	wire.Bind(new(IRedemptionService), new(*RedemptionService)),

	wire.Struct(new(MemberService), "*"),
	wire.Bind(new(IMemberService), new(*MemberService)),
)
