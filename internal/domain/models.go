package domain

import (
	"strconv"
	"time"
)

type PricingMode string

const (
	ModeUnit   PricingMode = "UNIT"
	ModeWeight PricingMode = "WEIGHT"
	ModeVolume PricingMode = "VOLUME"
	ModeLength PricingMode = "LENGTH"
	ModeArea   PricingMode = "AREA"
)

type PricingUnit string

const (
	UnitEach        PricingUnit = "EACH"
	UnitGram        PricingUnit = "GRAM"
	UnitKilogram    PricingUnit = "KILOGRAM"
	UnitMilliliter  PricingUnit = "MILLILITER"
	UnitLiter       PricingUnit = "LITER"
	UnitMeter       PricingUnit = "METER"
	UnitSquareMeter PricingUnit = "SQUARE_METER"
)

// PricingSpec describes how a purchasable unit is priced. For ModeUnit the
// price is always PricePerUnit; for every other mode the price scales as
// (quantity / BaseUnit) * PricePerUnit.
type PricingSpec struct {
	Mode         PricingMode `json:"mode"`
	Unit         PricingUnit `json:"unit"`
	PricePerUnit float64     `json:"pricePerUnit"`
	BaseUnit     float64     `json:"baseUnit,omitempty"`
}

type MenuSide struct {
	ID       string       `json:"id,omitempty"`
	Name     string       `json:"name"`
	Price    float64      `json:"price,omitempty"`
	Pricing  *PricingSpec `json:"pricing,omitempty"`
	PhotoURL string       `json:"photoUrl,omitempty"`
}

type MenuEntry struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Price       float64      `json:"price,omitempty"`
	Pricing     *PricingSpec `json:"pricing,omitempty"`
	PhotoURL    string       `json:"photoUrl,omitempty"`
	Sides       []MenuSide   `json:"sides,omitempty"`
}

type MenuSection struct {
	Title string      `json:"title"`
	Items []MenuEntry `json:"items"`
}

type MenuPayload struct {
	Menu []MenuSection `json:"menu"`
}

// LineItem is one row of the cart. A metered line (sold by weight, volume,
// length or area) carries both CustomQuantity and a copy of the originating
// PricingSpec so its price can be recomputed at message time; a fixed line
// carries neither.
type LineItem struct {
	Title          string       `json:"title"`
	Quantity       int          `json:"cantidad"`
	UnitPrice      float64      `json:"precio"`
	Side           *string      `json:"acompanamiento"`
	SideID         *string      `json:"acompanamientoId"`
	CustomQuantity *float64     `json:"customQuantity,omitempty"`
	Pricing        *PricingSpec `json:"pricing,omitempty"`
}

func (li LineItem) Metered() bool {
	return li.CustomQuantity != nil
}

// Clone returns a copy sharing no pointers with the receiver, so callers
// holding the copy cannot reach back into cart state.
func (li LineItem) Clone() LineItem {
	if li.Side != nil {
		side := *li.Side
		li.Side = &side
	}
	if li.SideID != nil {
		id := *li.SideID
		li.SideID = &id
	}
	if li.CustomQuantity != nil {
		q := *li.CustomQuantity
		li.CustomQuantity = &q
	}
	if li.Pricing != nil {
		spec := *li.Pricing
		li.Pricing = &spec
	}
	return li
}

// Key derives the identity used to decide whether two add-to-cart actions
// refer to the same line. Distinct custom quantities never collapse into one
// line, so the quantity itself is part of the key.
func (li LineItem) Key() string {
	switch {
	case li.Side != nil && *li.Side != "":
		return li.Title + "_" + *li.Side
	case li.CustomQuantity != nil:
		return li.Title + "_" + strconv.FormatFloat(*li.CustomQuantity, 'f', -1, 64)
	default:
		return li.Title
	}
}

// OrderEvent is published to Kafka when a cart is checked out.
type OrderEvent struct {
	Type      string     `json:"type"`
	EventID   string     `json:"event_id"`
	Items     []LineItem `json:"items"`
	Total     float64    `json:"total"`
	Phone     string     `json:"phone"`
	Timestamp time.Time  `json:"timestamp"`
}

const EventOrderPlaced = "order_placed"

type ItemStats struct {
	Title   string  `json:"title"`
	Orders  float64 `json:"orders"`
	Revenue float64 `json:"revenue"`
}
