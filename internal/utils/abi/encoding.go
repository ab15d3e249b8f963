// Package abi wraps go-ethereum's ABI packing behind the equivalents of
// Solidity's abi.encode / abi.decode, which the digest construction and the
// wire transaction codec both need.
package abi

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ABIEncode packs the given values according to the JSON argument
// definition in abiStr, the same way Solidity's abi.encode does.
func ABIEncode(abiStr string, values ...any) ([]byte, error) {
	// Packing is only exposed through method calls, so wrap the arguments
	// in a throwaway method and strip its selector.
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "inputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	res, err := inAbi.Pack("method", values...)
	if err != nil {
		return nil, err
	}

	return res[4:], nil
}

// ABIDecode unpacks data according to the JSON argument definition in
// abiStr, the same way Solidity's abi.decode does.
func ABIDecode(abiStr string, data []byte) ([]any, error) {
	inDef := fmt.Sprintf(`[{ "name" : "method", "type": "function", "outputs": %s}]`, abiStr)
	inAbi, err := abi.JSON(strings.NewReader(inDef))
	if err != nil {
		return nil, err
	}

	return inAbi.Unpack("method", data)
}
