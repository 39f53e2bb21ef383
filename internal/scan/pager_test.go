package scan_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bsc-wallet-scanner/internal/scan"
)

var _ = Describe("Pager", func() {
	var address = "0xc51beb5b222aed7f0b56042f04895ee41886b763"

	It("emits ceil(N/pageSize) pages for N records", func() {
		cases := []struct {
			total         int
			pageSize      int
			expectedPages int
		}{
			{total: 10, pageSize: 4, expectedPages: 3},
			{total: 8, pageSize: 4, expectedPages: 2},
			{total: 3, pageSize: 4, expectedPages: 1},
			{total: 0, pageSize: 4, expectedPages: 0},
		}

		for _, c := range cases {
			fetcher := &pagedFetcher{records: makeRecords(c.total)}
			pager := scan.NewPager(fetcher, mustAddress(address), c.pageSize, 0)

			pages := 0
			seen := 0
			for pager.Next(context.Background()) {
				pages++
				seen += len(pager.Page())
			}

			Expect(pager.Err()).ToNot(HaveOccurred())
			Expect(pages).To(Equal(c.expectedPages), "total=%d pageSize=%d", c.total, c.pageSize)
			Expect(seen).To(Equal(c.total))
			Expect(pager.TotalFetched()).To(Equal(c.total))
		}
	})

	It("preserves request order across pages", func() {
		fetcher := &pagedFetcher{records: makeRecords(7)}
		pager := scan.NewPager(fetcher, mustAddress(address), 3, 0)

		var hashes []string
		for pager.Next(context.Background()) {
			for _, rec := range pager.Page() {
				hashes = append(hashes, rec.Hash)
			}
		}

		Expect(pager.Err()).ToNot(HaveOccurred())
		Expect(hashes).To(HaveLen(7))
		for i, h := range hashes {
			Expect(h).To(Equal(hashForIndex(i)))
		}
	})

	When("the result cap is reached", func() {
		It("trims the final page and marks the result truncated", func() {
			fetcher := &pagedFetcher{records: makeRecords(10)}
			pager := scan.NewPager(fetcher, mustAddress(address), 4, 6)

			total := 0
			for pager.Next(context.Background()) {
				total += len(pager.Page())
			}

			Expect(pager.Err()).ToNot(HaveOccurred())
			Expect(total).To(Equal(6))
			Expect(pager.Truncated()).To(BeTrue())
		})
	})

	When("a fetch fails mid-scan", func() {
		It("stops, surfaces the error, and keeps prior pages with the caller", func() {
			failure := errors.New("boom")
			fetcher := &pagedFetcher{records: makeRecords(10), failOn: 2, failErr: failure}
			pager := scan.NewPager(fetcher, mustAddress(address), 4, 0)

			var collected int
			for pager.Next(context.Background()) {
				collected += len(pager.Page())
			}

			Expect(collected).To(Equal(4), "first page already emitted")
			Expect(pager.Err()).To(MatchError(failure))
			Expect(pager.Next(context.Background())).To(BeFalse(), "not restartable")
		})
	})

	When("the context is canceled", func() {
		It("stops before issuing the next request", func() {
			fetcher := &pagedFetcher{records: makeRecords(10)}
			pager := scan.NewPager(fetcher, mustAddress(address), 4, 0)

			ctx, cancel := context.WithCancel(context.Background())
			Expect(pager.Next(ctx)).To(BeTrue())
			cancel()

			Expect(pager.Next(ctx)).To(BeFalse())
			Expect(pager.Err()).To(MatchError(context.Canceled))
			Expect(fetcher.calls).To(Equal(1))
		})
	})
})
