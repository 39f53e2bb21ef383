package io_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	iopkg "bsc-wallet-scanner/internal/io"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("StripUTF8BOM", func() {
	It("removes a leading UTF-8 BOM when present", func() {
		src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("ignored_hashes: []")...)
		r := iopkg.StripUTF8BOM(bytes.NewReader(src))
		b, err := io.ReadAll(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("ignored_hashes: []"))
	})

	It("returns the original content when no BOM is present", func() {
		src := []byte("plain")
		r := iopkg.StripUTF8BOM(bytes.NewReader(src))
		b, err := io.ReadAll(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(b)).To(Equal("plain"))
	})

	It("handles readers shorter than a BOM without error", func() {
		src := []byte{0xEF, 0xBB} // incomplete BOM
		r := iopkg.StripUTF8BOM(bytes.NewReader(src))
		b, err := io.ReadAll(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal(src))
	})
})

var _ = Describe("FileExists", func() {
	It("reports true for a file that exists", func() {
		f := filepath.Join(GinkgoT().TempDir(), "present.txt")
		Expect(os.WriteFile(f, []byte("x"), 0o644)).To(Succeed())

		exists, err := iopkg.FileExists(f)
		Expect(err).ToNot(HaveOccurred())
		Expect(exists).To(BeTrue())
	})

	It("reports false for a file that does not exist", func() {
		exists, err := iopkg.FileExists(filepath.Join(GinkgoT().TempDir(), "absent.txt"))
		Expect(err).ToNot(HaveOccurred())
		Expect(exists).To(BeFalse())
	})
})

var _ = Describe("EnsureDir", func() {
	It("creates missing directories recursively", func() {
		dir := filepath.Join(GinkgoT().TempDir(), "result", "nested")
		Expect(iopkg.EnsureDir(dir)).To(Succeed())

		info, err := os.Stat(dir)
		Expect(err).ToNot(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	It("is a no-op for a directory that already exists", func() {
		dir := GinkgoT().TempDir()
		Expect(iopkg.EnsureDir(dir)).To(Succeed())
	})
})
