// Package methodrepo provides data transfer objects and mapping functions for
// shipping method persistence. Calculators are persisted as configuration data
// (a type name plus parameters), never as a type hierarchy; the mapping layer
// reconstructs the concrete strategy value on load.
package methodrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipping"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MethodDTO represents the database structure for persisting shipping method
// configuration. Category, zone, and store associations are stored as JSON
// columns; they are small configuration lists read as a whole on every load.
type MethodDTO struct {
	ID               uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name             string              `gorm:"type:varchar(255);not null"`
	CategoryIDs      []uuid.UUID         `gorm:"serializer:json;type:jsonb"`
	Zones            []ZoneDTO           `gorm:"serializer:json;type:jsonb"`
	StoreIDs         []uuid.UUID         `gorm:"serializer:json;type:jsonb"`
	CalculatorType   string              `gorm:"type:varchar(64);not null"`
	CalculatorParams CalculatorParamsDTO `gorm:"serializer:json;type:jsonb"`
}

// TableName specifies the database table name for shipping method entities.
// Overrides GORM's default naming convention to use "shipping_methods".
func (MethodDTO) TableName() string {
	return "shipping_methods"
}

// ZoneDTO stores one geographic zone inside the method's JSON column.
type ZoneDTO struct {
	Name    string          `json:"name"`
	Members []ZoneMemberDTO `json:"members"`
}

// ZoneMemberDTO stores one country or country+region pair of a zone.
type ZoneMemberDTO struct {
	Country string `json:"country"`
	Region  string `json:"region,omitempty"`
}

// CalculatorParamsDTO stores the parameters of whichever calculator type the
// method is configured with. Unused fields stay empty.
type CalculatorParamsDTO struct {
	Amount   string `json:"amount,omitempty"`
	Currency string `json:"currency,omitempty"`
	Percent  string `json:"percent,omitempty"`
}

// fromDomain converts a shipping method aggregate to its database
// representation.
func fromDomain(method *shipping.Method) (MethodDTO, error) {
	calculatorType, params, err := calculatorToDTO(method.Calculator())
	if err != nil {
		return MethodDTO{}, err
	}

	zones := make([]ZoneDTO, 0, len(method.Zones()))
	for _, zone := range method.Zones() {
		members := make([]ZoneMemberDTO, 0, len(zone.Members()))
		for _, member := range zone.Members() {
			members = append(members, ZoneMemberDTO{
				Country: member.Country,
				Region:  member.Region,
			})
		}
		zones = append(zones, ZoneDTO{Name: zone.Name(), Members: members})
	}

	return MethodDTO{
		ID:               method.ID().Bytes(),
		Name:             method.Name(),
		CategoryIDs:      uuidsFromDomain(method.CategoryIDs()),
		Zones:            zones,
		StoreIDs:         uuidsFromDomain(method.StoreIDs()),
		CalculatorType:   calculatorType,
		CalculatorParams: params,
	}, nil
}

// toDomain converts a database DTO to a shipping method aggregate.
func toDomain(dto MethodDTO) (*shipping.Method, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	categoryIDs, err := uuidsToDomain(dto.CategoryIDs)
	if err != nil {
		return nil, err
	}

	storeIDs, err := uuidsToDomain(dto.StoreIDs)
	if err != nil {
		return nil, err
	}

	zones := make([]shipping.Zone, 0, len(dto.Zones))
	for _, zoneDTO := range dto.Zones {
		members := make([]shipping.ZoneMember, 0, len(zoneDTO.Members))
		for _, memberDTO := range zoneDTO.Members {
			members = append(members, shipping.ZoneMember{
				Country: memberDTO.Country,
				Region:  memberDTO.Region,
			})
		}
		zone, zoneErr := shipping.NewZone(zoneDTO.Name, members)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, zone)
	}

	calculator, err := calculatorToDomain(dto.CalculatorType, dto.CalculatorParams)
	if err != nil {
		return nil, err
	}

	return shipping.NewMethod(id, dto.Name, categoryIDs, zones, storeIDs, calculator)
}

// calculatorToDTO extracts the type name and parameters of a concrete
// calculator. Unknown calculator implementations cannot be persisted.
func calculatorToDTO(calculator shipping.Calculator) (string, CalculatorParamsDTO, error) {
	switch c := calculator.(type) {
	case shipping.FlatRateCalculator:
		return shipping.CalculatorTypeFlatRate, CalculatorParamsDTO{
			Amount:   c.Amount().Amount().String(),
			Currency: c.Amount().Currency(),
		}, nil
	case shipping.PerItemCalculator:
		return shipping.CalculatorTypePerItem, CalculatorParamsDTO{
			Amount:   c.AmountPerUnit().Amount().String(),
			Currency: c.AmountPerUnit().Currency(),
		}, nil
	case shipping.FlatPercentCalculator:
		return shipping.CalculatorTypeFlatPercent, CalculatorParamsDTO{
			Percent: c.Percent().String(),
		}, nil
	default:
		return "", CalculatorParamsDTO{}, errs.NewValueIsInvalidError("calculator: " + calculator.Name())
	}
}

// calculatorToDomain reconstructs a calculator strategy from its persisted
// type name and parameters.
func calculatorToDomain(calculatorType string, params CalculatorParamsDTO) (shipping.Calculator, error) {
	switch calculatorType {
	case shipping.CalculatorTypeFlatRate:
		amount, err := kernel.MoneyFromString(params.Amount, params.Currency)
		if err != nil {
			return nil, err
		}
		calc, err := shipping.NewFlatRateCalculator(amount)
		if err != nil {
			return nil, err
		}
		return calc, nil
	case shipping.CalculatorTypePerItem:
		amount, err := kernel.MoneyFromString(params.Amount, params.Currency)
		if err != nil {
			return nil, err
		}
		calc, err := shipping.NewPerItemCalculator(amount)
		if err != nil {
			return nil, err
		}
		return calc, nil
	case shipping.CalculatorTypeFlatPercent:
		percent, err := decimal.NewFromString(params.Percent)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("percent", err)
		}
		calc, err := shipping.NewFlatPercentCalculator(percent)
		if err != nil {
			return nil, err
		}
		return calc, nil
	default:
		return nil, errs.NewValueIsInvalidError("calculatorType: " + calculatorType)
	}
}

func uuidsFromDomain(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}

func uuidsToDomain(raw []uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
