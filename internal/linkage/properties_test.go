package linkage_test

import (
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/goflex/internal/linkage"
)

var _ = Describe("Resolve", func() {
	entries := linkage.Matrix("/vendor/root")

	It("covers every platform, width, profile and feature set", func() {
		Expect(entries).To(HaveLen(len(linkage.SupportedOS) * 2 * 2 * 8))
	})

	It("produces one search path and backends*(1+ext) libraries for valid combinations", func() {
		valid := 0
		for _, e := range entries {
			if e.Err != nil {
				continue
			}
			valid++
			Expect(e.Plan.SearchPath).To(HavePrefix(filepath.Join("/vendor/root", "FleX", "lib")))

			want := len(e.Config.Features.Backends())
			if e.Config.Features.Ext {
				want *= 2
			}
			Expect(e.Plan.Libraries).To(HaveLen(want), "config %+v", e.Config)
			for _, lib := range e.Plan.Libraries {
				Expect(lib).To(ContainSubstring(string(e.Config.Profile)))
			}
		}
		Expect(valid).To(BeNumerically(">", 0))
	})

	It("always rejects D3D outside Windows", func() {
		for _, e := range entries {
			if e.Config.Features.D3D && e.Config.Target.OS != linkage.Windows {
				Expect(e.Err).To(HaveOccurred())
				Expect(e.Plan).To(BeNil())
			}
		}
	})

	It("always rejects non 64-bit Linux", func() {
		for _, e := range entries {
			if e.Config.Target.OS == linkage.Linux && e.Config.Target.PointerWidth != 64 {
				Expect(e.Err).To(MatchError(linkage.ErrPointerWidth))
			}
		}
	})

	It("links nothing when only the extension is enabled", func() {
		for _, e := range entries {
			f := e.Config.Features
			if f.Ext && !f.D3D && !f.CUDA && e.Err == nil {
				Expect(e.Plan.Libraries).To(BeEmpty())
			}
		}
	})

	It("places each extension library right after its core library", func() {
		for _, e := range entries {
			if e.Err != nil || !e.Config.Features.Ext {
				continue
			}
			libs := e.Plan.Libraries
			for i := 0; i < len(libs); i += 2 {
				Expect(libs[i]).To(HavePrefix("NvFlex" + string(e.Config.Profile)))
				Expect(libs[i+1]).To(Equal(strings.Replace(libs[i], "NvFlex", "NvFlexExt", 1)))
			}
		}
	})

	DescribeTable("library names",
		func(target linkage.Target, profile linkage.Profile, f linkage.Features, dir string, libs []string) {
			plan, err := linkage.Resolve(linkage.Config{Target: target, Profile: profile, Features: f, Root: "r"})
			Expect(err).NotTo(HaveOccurred())
			Expect(filepath.Base(plan.SearchPath)).To(Equal(dir))
			Expect(plan.Libraries).To(Equal(libs))
		},
		Entry("linux release cuda+ext",
			linkage.Target{OS: linkage.Linux, PointerWidth: 64}, linkage.Release, linkage.Features{CUDA: true, Ext: true},
			"linux64", []string{"NvFlexReleaseCUDA_x64", "NvFlexExtReleaseCUDA_x64"}),
		Entry("windows debug d3d",
			linkage.Target{OS: linkage.Windows, PointerWidth: 64}, linkage.Debug, linkage.Features{D3D: true},
			"win64", []string{"NvFlexDebugD3D_x64"}),
		Entry("windows 32 release d3d+ext",
			linkage.Target{OS: linkage.Windows, PointerWidth: 32}, linkage.Release, linkage.Features{D3D: true, Ext: true},
			"win86", []string{"NvFlexReleaseD3D_x86", "NvFlexExtReleaseD3D_x86"}),
		Entry("android debug cuda+ext",
			linkage.Target{OS: linkage.Android}, linkage.Debug, linkage.Features{CUDA: true, Ext: true},
			"android", []string{"NvFlexDebugCUDA_aarch64", "NvFlexExtDebugCUDA_aarch64"}),
	)
})
