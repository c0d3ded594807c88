package dto

/**
  {
      "available": 1900000,
      "pending": 0
  }
*/

type Balance struct {
	Available int64 `json:"available"`
	Pending   int64 `json:"pending"`
}
