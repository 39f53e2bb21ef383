package scan_test

import (
	"context"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bsc-wallet-scanner/internal/bscscan"
	"bsc-wallet-scanner/internal/scan"
)

var _ = Describe("Normalizer", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	validRecord := func() bscscan.TokenTransferRecord {
		return bscscan.TokenTransferRecord{
			Hash:         "0xabc123",
			TimeStamp:    "1700000000",
			From:         "0x1000000000000000000000000000000000000001",
			To:           "0x2000000000000000000000000000000000000002",
			Value:        "1500000000000000000",
			TokenName:    "Test Token",
			TokenSymbol:  "TST",
			TokenDecimal: "18",
		}
	}

	It("normalizes a well-formed record", func() {
		normalizer := scan.NewNormalizer()

		tx, ok := normalizer.Normalize(ctx, validRecord())
		Expect(ok).To(BeTrue())
		Expect(tx.Hash).To(Equal("0xabc123"))
		Expect(tx.Timestamp).To(Equal(time.Unix(1700000000, 0).UTC()))
		Expect(tx.From.String()).To(Equal("0x1000000000000000000000000000000000000001"))
		Expect(tx.To.String()).To(Equal("0x2000000000000000000000000000000000000002"))
		Expect(tx.Method).To(Equal("transfer"))
		Expect(tx.FormatTokenLine()).To(Equal("1.500000 TST (Test Token)"))
	})

	It("skips records missing required fields without failing the scan", func() {
		normalizer := scan.NewNormalizer()

		missingHash := validRecord()
		missingHash.Hash = ""

		badTimestamp := validRecord()
		badTimestamp.Hash = "0xother"
		badTimestamp.TimeStamp = "not-a-number"

		badAddress := validRecord()
		badAddress.Hash = "0xanother"
		badAddress.From = "garbage"

		for _, rec := range []bscscan.TokenTransferRecord{missingHash, badTimestamp, badAddress} {
			_, ok := normalizer.Normalize(ctx, rec)
			Expect(ok).To(BeFalse())
		}

		Expect(normalizer.Skipped()).To(Equal(3))
	})

	It("emits two transactions and one skip for a page of three with a missing hash", func() {
		normalizer := scan.NewNormalizer()

		page := []bscscan.TokenTransferRecord{validRecord(), validRecord(), validRecord()}
		page[0].Hash = "0xone"
		page[1].Hash = ""
		page[2].Hash = "0xthree"

		var emitted int
		for _, rec := range page {
			if _, ok := normalizer.Normalize(ctx, rec); ok {
				emitted++
			}
		}

		Expect(emitted).To(Equal(2))
		Expect(normalizer.Skipped()).To(Equal(1))
	})

	It("drops duplicate hashes silently, first occurrence winning", func() {
		normalizer := scan.NewNormalizer()

		first := validRecord()
		duplicate := validRecord()
		duplicate.Value = "999" // different payload, same hash

		tx, ok := normalizer.Normalize(ctx, first)
		Expect(ok).To(BeTrue())

		_, ok = normalizer.Normalize(ctx, duplicate)
		Expect(ok).To(BeFalse())
		Expect(normalizer.Duplicates()).To(Equal(1))
		Expect(normalizer.Skipped()).To(BeZero())
		Expect(tx.FormatTokenLine()).To(Equal("1.500000 TST (Test Token)"))
	})

	It("defaults an unparseable amount to zero and keeps the record", func() {
		normalizer := scan.NewNormalizer()

		rec := validRecord()
		rec.Value = "not-a-number"

		tx, ok := normalizer.Normalize(ctx, rec)
		Expect(ok).To(BeTrue())
		Expect(tx.Amount.Sign()).To(BeZero())
	})

	It("defaults a missing token decimal to 18", func() {
		normalizer := scan.NewNormalizer()

		rec := validRecord()
		rec.TokenDecimal = ""

		tx, ok := normalizer.Normalize(ctx, rec)
		Expect(ok).To(BeTrue())
		Expect(tx.Decimals).To(Equal(18))
	})

	Describe("method extraction", func() {
		It("prefers the declared function name, trimming the signature", func() {
			rec := validRecord()
			rec.FunctionName = "transferFrom(address _from, address _to, uint256 _value)"

			tx, ok := scan.NewNormalizer().Normalize(ctx, rec)
			Expect(ok).To(BeTrue())
			Expect(tx.Method).To(Equal("transferFrom"))
		})

		It("falls back to the input selector", func() {
			rec := validRecord()
			rec.Input = "0x095ea7b3" + strings.Repeat("0", 128)

			tx, ok := scan.NewNormalizer().Normalize(ctx, rec)
			Expect(ok).To(BeTrue())
			Expect(tx.Method).To(Equal("approve"))
		})

		It("labels unrecognized selectors as unknown", func() {
			rec := validRecord()
			rec.Input = "0xdeadbeef"

			tx, ok := scan.NewNormalizer().Normalize(ctx, rec)
			Expect(ok).To(BeTrue())
			Expect(tx.Method).To(Equal("unknown"))
		})
	})

	When("an ignore list is supplied", func() {
		It("drops listed hashes case-insensitively", func() {
			list, err := scan.IgnoreListFromYAML(strings.NewReader(
				"ignored_hashes:\n  - hash: \"0xABC123\"\n    reason: \"spam airdrop\"\n",
			))
			Expect(err).ToNot(HaveOccurred())

			normalizer := scan.NewNormalizer(scan.WithIgnoreList(list))

			_, ok := normalizer.Normalize(ctx, validRecord())
			Expect(ok).To(BeFalse())
			Expect(normalizer.Ignored()).To(Equal(1))
			Expect(normalizer.Skipped()).To(BeZero())
		})
	})
})
