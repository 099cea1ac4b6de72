package dto

type PairingRequest struct {
	SolutionLimit int `json:"solution_limit"`
}

type CoupleResponse struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Slots  []int  `json:"slots"`
	Sector int    `json:"sector"`
}

type SolutionResponse struct {
	Couples []CoupleResponse `json:"couples"`
}

type PairingResponse struct {
	ExplorationStatus  string             `json:"exploration_status"`
	SatisfactionStatus string             `json:"satisfaction_status"`
	Objective          int                `json:"objective"`
	Solutions          []SolutionResponse `json:"solutions"`
}
