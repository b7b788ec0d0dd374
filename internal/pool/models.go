package pool

import "time"

// Pool is a funding campaign with a fixed goal. AdminShare is the operator's
// running capital in the pool; InitialAdminAmount is its immutable snapshot at
// creation time.
type Pool struct {
	ID                 string    `bson:"_id,omitempty" json:"_id"`
	Name               string    `bson:"name" json:"name"`
	TotalAmount        float64   `bson:"totalAmount" json:"totalAmount"`
	AdminShare         float64   `bson:"adminShare" json:"adminShare"`
	InitialAdminAmount float64   `bson:"initialAdminAmount" json:"initialAdminAmount"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
}

// Investor is a person holding a position in a pool. Amount only ever
// decreases (buyouts); InitialAmount never changes after creation.
type Investor struct {
	ID            string    `bson:"_id,omitempty" json:"_id"`
	PoolID        string    `bson:"poolId" json:"poolId"`
	Name          string    `bson:"personName" json:"personName"`
	Amount        float64   `bson:"amount" json:"amount"`
	InitialAmount float64   `bson:"initialAmount" json:"initialAmount"`
	Mobile        string    `bson:"mobileNumber,omitempty" json:"mobileNumber,omitempty"`
	PasswordHash  string    `bson:"password" json:"-"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// Buyout is an immutable audit record of the admin acquiring part of an
// investor's position.
type Buyout struct {
	ID           string    `bson:"_id,omitempty" json:"_id"`
	PoolID       string    `bson:"poolId" json:"poolId"`
	InvestorID   string    `bson:"personId" json:"personId"`
	InvestorName string    `bson:"personName" json:"personName"`
	Amount       float64   `bson:"amount" json:"amount"`
	CreatedAt    time.Time `bson:"buyoutDate" json:"buyoutDate"`
}

// InvestmentStatus is the derived capacity view of a pool. It is recomputed
// fresh before every capacity-checked mutation.
type InvestmentStatus struct {
	TotalInvestment float64 `json:"totalInvestment"`
	RemainingAmount float64 `json:"remainingAmount"`
	IsFunded        bool    `json:"isFunded"`
}

// PoolDetails is the header section of a summary.
type PoolDetails struct {
	ID                 string    `json:"_id"`
	Name               string    `json:"name"`
	TotalAmount        float64   `json:"totalAmount"`
	InitialAdminAmount float64   `json:"initialAdminAmount"`
	CreatedAt          time.Time `json:"createdAt"`
}

// AdminContribution reports the operator's capital and its share of the goal.
type AdminContribution struct {
	Amount          float64 `json:"amount"`
	SharePercentage float64 `json:"sharePercentage"`
}

// InvestorShare is an investor plus their share of the funding goal.
type InvestorShare struct {
	Investor
	SharePercentage float64 `json:"sharePercentage"`
}

// Summary is the full derived view of a pool.
type Summary struct {
	PoolDetails       PoolDetails       `json:"poolDetails"`
	InvestmentStatus  InvestmentStatus  `json:"investmentStatus"`
	AdminContribution AdminContribution `json:"adminContribution"`
	Investors         []InvestorShare   `json:"investors"`
	InvestorCount     int               `json:"investorCount"`
	BuyoutHistory     []*Buyout         `json:"buyoutHistory"`
}

// ProfitShare is one participant's cut of a proposed profit distribution.
// ParticipantID is the investor id, or the literal "admin" for the operator.
type ProfitShare struct {
	ParticipantID   string  `json:"participantId"`
	Name            string  `json:"name"`
	Investment      float64 `json:"investment"`
	SharePercentage float64 `json:"sharePercentage"`
	ProfitShare     float64 `json:"profitShare"`
}
