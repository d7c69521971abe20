package convert

import (
	"testing"

	"github.com/chewing/zhuyin-core/internal/dict"
	"github.com/chewing/zhuyin-core/internal/phone"
	"github.com/chewing/zhuyin-core/internal/tree"
)

func buildBenchFixture(b *testing.B) (*tree.Tree, *dict.Dict, []phone.Phone) {
	b.Helper()

	tai, _ := phone.Encode(6, 0, 5, 2) // ㄊㄞˊ
	wan, _ := phone.Encode(0, 2, 9, 1) // ㄨㄢ
	bu, _ := phone.Encode(1, 2, 0, 4)  // ㄅㄨˋ
	zhi, _ := phone.Encode(9, 0, 0, 1) // ㄓ
	dao, _ := phone.Encode(5, 0, 7, 4) // ㄉㄠˋ

	phrases := []string{"台", "灣", "台灣", "不", "知", "道", "不知道"}
	seqs := [][]phone.Phone{{tai}, {wan}, {tai, wan}, {bu}, {zhi}, {dao}, {bu, zhi, dao}}
	freqs := []uint32{10, 10, 1000, 10, 10, 10, 1000}

	blob, offsets := dict.Encode(phrases)
	entries := make([]tree.Entry, len(phrases))
	for i := range phrases {
		phones := make([]uint16, len(seqs[i]))
		for j, p := range seqs[i] {
			phones[j] = uint16(p)
		}
		entries[i] = tree.Entry{Phones: phones, Offset: offsets[i], Freq: freqs[i]}
	}

	tr, err := tree.New(tree.Encode(tree.Build(entries)), false)
	if err != nil {
		b.Fatal(err)
	}
	return tr, dict.New(blob), []phone.Phone{bu, zhi, dao, tai, wan}
}

func BenchmarkConvert(b *testing.B) {
	tr, d, syllables := buildBenchFixture(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Convert(tr, d, syllables)
	}
}
