package scan_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"bsc-wallet-scanner/internal/scan"
)

var _ = Describe("IgnoreList", func() {
	It("parses hashes and reasons from YAML", func() {
		yml := `ignored_hashes:
  - hash: "0xaaa"
    reason: "spam airdrop"
  - hash: "0xbbb"
    reason: "test transaction"
`
		list, err := scan.IgnoreListFromYAML(strings.NewReader(yml))
		Expect(err).ToNot(HaveOccurred())
		Expect(list.Len()).To(Equal(2))

		reason, ignored := list.IsIgnored("0xaaa")
		Expect(ignored).To(BeTrue())
		Expect(reason).To(Equal("spam airdrop"))

		_, ignored = list.IsIgnored("0xccc")
		Expect(ignored).To(BeFalse())
	})

	It("matches hashes case-insensitively", func() {
		yml := "ignored_hashes:\n  - hash: \"0xAbCdEf\"\n    reason: \"spam\"\n"
		list, err := scan.IgnoreListFromYAML(strings.NewReader(yml))
		Expect(err).ToNot(HaveOccurred())

		_, ignored := list.IsIgnored("0xABCDEF")
		Expect(ignored).To(BeTrue())
	})

	It("tolerates a leading UTF-8 BOM", func() {
		yml := string([]byte{0xEF, 0xBB, 0xBF}) + "ignored_hashes:\n  - hash: \"0x1\"\n    reason: \"r\"\n"
		list, err := scan.IgnoreListFromYAML(strings.NewReader(yml))
		Expect(err).ToNot(HaveOccurred())
		Expect(list.Len()).To(Equal(1))
	})

	It("rejects malformed YAML", func() {
		_, err := scan.IgnoreListFromYAML(strings.NewReader("ignored_hashes: {broken"))
		Expect(err).To(HaveOccurred())
	})

	It("treats a nil list as ignoring nothing", func() {
		var list *scan.IgnoreList
		_, ignored := list.IsIgnored("0xaaa")
		Expect(ignored).To(BeFalse())
		Expect(list.Len()).To(BeZero())
	})
})
