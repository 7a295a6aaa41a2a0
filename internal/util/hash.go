package util

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Hash3 возвращает детерминированный 64-битный хеш координаты с учётом сида и "соли".
// Соль разделяет независимые решения (деревья, высота ствола и т.п.) в одной точке.
func Hash3(seed int64, salt uint64, x, y, z int) uint64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:16], salt)
	binary.LittleEndian.PutUint32(buf[16:20], uint32(int32(x)))
	binary.LittleEndian.PutUint32(buf[20:24], uint32(int32(y)))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(int32(z)))
	return xxhash.Sum64(buf[:28])
}

// Hash01 возвращает детерминированное значение в [0, 1) для координаты
func Hash01(seed int64, salt uint64, x, y, z int) float64 {
	// старшие 53 бита — ровно мантисса float64
	return float64(Hash3(seed, salt, x, y, z)>>11) / float64(1<<53)
}

// HashRange возвращает детерминированное целое в [min, max]
func HashRange(seed int64, salt uint64, x, y, z, min, max int) int {
	if max <= min {
		return min
	}
	span := uint64(max - min + 1)
	return min + int(Hash3(seed, salt, x, y, z)%span)
}
