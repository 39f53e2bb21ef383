package bscscan

// TokenTransferRecord is one raw BEP-20 token transfer entry as returned by
// the explorer's account/tokentx action. All fields arrive as strings; the
// normalizer is responsible for parsing and for tolerating absent values.
type TokenTransferRecord struct {
	Hash            string `json:"hash"`
	BlockNumber     string `json:"blockNumber"`
	TimeStamp       string `json:"timeStamp"`
	From            string `json:"from"`
	To              string `json:"to"`
	ContractAddress string `json:"contractAddress"`
	Value           string `json:"value"`
	TokenName       string `json:"tokenName"`
	TokenSymbol     string `json:"tokenSymbol"`
	TokenDecimal    string `json:"tokenDecimal"`
	FunctionName    string `json:"functionName"`
	Input           string `json:"input"`
}
