package slcan

import (
	"fmt"
	"strconv"
)

type BitRate int

const (
	BitRate10K BitRate = iota
	BitRate20K
	BitRate50K
	BitRate100K
	BitRate125K
	BitRate250K
	BitRate500K
	BitRate800K
	BitRate1000K
)

type bitRateInfo struct {
	rate BitRate
	code byte
	kbit float64
}

// bitRates is the S command table in wire order. Protocol digits are looked up,
// never derived from the constant values.
var bitRates = []bitRateInfo{
	{BitRate10K, '0', 10},
	{BitRate20K, '1', 20},
	{BitRate50K, '2', 50},
	{BitRate100K, '3', 100},
	{BitRate125K, '4', 125},
	{BitRate250K, '5', 250},
	{BitRate500K, '6', 500},
	{BitRate800K, '7', 800},
	{BitRate1000K, '8', 1000},
}

func lookupBitRate(br BitRate) (bitRateInfo, bool) {
	for _, info := range bitRates {
		if info.rate == br {
			return info, true
		}
	}
	return bitRateInfo{}, false
}

// ParseBitRate returns the BitRate for a rate given in kbit/s
func ParseBitRate(kbit float64) (BitRate, error) {
	for _, info := range bitRates {
		if info.kbit == kbit {
			return info.rate, nil
		}
	}
	return 0, newError("parse bitrate", ErrInvalidInput, fmt.Errorf("unsupported rate: %g kbit/s", kbit))
}

// Code returns the digit sent in the S command
func (br BitRate) Code() (byte, error) {
	info, ok := lookupBitRate(br)
	if !ok {
		return 0, newError("bitrate code", ErrInvalidInput, fmt.Errorf("unknown bitrate %d", int(br)))
	}
	return info.code, nil
}

// Kbit returns the rate in kbit/s, or 0 for an unknown value
func (br BitRate) Kbit() float64 {
	info, _ := lookupBitRate(br)
	return info.kbit
}

func (br BitRate) String() string {
	info, ok := lookupBitRate(br)
	if !ok {
		return "BitRate(" + strconv.Itoa(int(br)) + ")"
	}
	return strconv.FormatFloat(info.kbit, 'f', -1, 64) + "kbit/s"
}
