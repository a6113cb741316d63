package usecase

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"cekkuota-bot/internal/domain/model"
)

// maxRenderedPackages caps the report length; anything past the cap is
// dropped silently.
const maxRenderedPackages = 12

// rawPreviewLimit bounds the fallback JSON preview for unrecognized payload
// shapes.
const rawPreviewLimit = 1500

// Alias orders below are fixed contracts: extraction always tries the keys in
// order and the first non-empty value wins.
var (
	packageListKeys  = []string{"data.quotas", "quotas", "quota"}
	packageNameKeys  = []string{"name", "package_name", "packageName", "quota_name"}
	expiryKeys       = []string{"expired_at", "expiredAt", "expiry", "exp_date", "end_date"}
	detailListKeys   = []string{"details", "detail", "benefits", "items"}
	benefitKeys      = []string{"benefit", "benefit_name", "name"}
	kindKeys         = []string{"type", "kind", "category"}
	remainingKeys    = []string{"remaining", "sisa", "remaining_quota", "quota_remaining"}
	totalKeys        = []string{"total", "quota_total", "total_quota"}
	remainingPctKeys = []string{"remaining_percentage", "percentage_remaining", "remaining_percent"}
	usedPctKeys      = []string{"used_percentage", "percentage_used", "used_percent"}
)

// ParseReport normalizes one upstream response into a QuotaReport. It never
// fails: missing or differently-typed fields degrade to defaults.
func ParseReport(msisdn string, status int, body []byte) model.QuotaReport {
	rep := model.QuotaReport{MSISDN: msisdn, HTTPStatus: status}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		rep.Kind = model.ReportNoData
		return rep
	}

	if errField := root.Get("error"); errField.Exists() {
		rep.Kind = model.ReportError
		rep.ErrorMessage = errField.String()
		if st := root.Get("status"); st.Exists() {
			rep.UpstreamStatus = st.String()
		}
		return rep
	}

	list, found := packageList(root)
	if !found {
		rep.Kind = model.ReportRaw
		rep.RawPreview = rawPreview(root)
		return rep
	}
	if len(list) == 0 {
		rep.Kind = model.ReportEmpty
		return rep
	}

	if len(list) > maxRenderedPackages {
		list = list[:maxRenderedPackages]
	}
	rep.Kind = model.ReportPackages
	rep.Packages = make([]model.QuotaPackage, 0, len(list))
	for _, item := range list {
		rep.Packages = append(rep.Packages, parsePackage(item))
	}
	return rep
}

// packageList extracts the quota packages by trying the alias paths in order.
// The first present value wins regardless of the others; a bare object is
// wrapped as a single-element list.
func packageList(root gjson.Result) ([]gjson.Result, bool) {
	for _, key := range packageListKeys {
		v := root.Get(key)
		if !v.Exists() {
			continue
		}
		return v.Array(), true
	}
	return nil, false
}

func parsePackage(v gjson.Result) model.QuotaPackage {
	pkg := model.QuotaPackage{
		Name:   firstString(v, packageNameKeys...),
		Expiry: firstString(v, expiryKeys...),
	}
	if pkg.Name == "" {
		pkg.Name = "Paket"
	}
	if pkg.Expiry == "" {
		pkg.Expiry = "-"
	}
	for _, key := range detailListKeys {
		d := v.Get(key)
		if !d.Exists() {
			continue
		}
		for _, item := range d.Array() {
			pkg.Details = append(pkg.Details, parseLineItem(item))
		}
		break
	}
	return pkg
}

func parseLineItem(v gjson.Result) model.LineItem {
	return model.LineItem{
		Benefit:   firstString(v, benefitKeys...),
		Kind:      strings.ToUpper(firstString(v, kindKeys...)),
		Remaining: firstString(v, remainingKeys...),
		Total:     firstString(v, totalKeys...),
		Percent:   percentOf(v),
	}
}

// percentOf picks the remaining percentage over the used percentage; a
// candidate only qualifies when it carries a literal percent marker.
func percentOf(v gjson.Result) string {
	if p := firstString(v, remainingPctKeys...); strings.Contains(p, "%") {
		return p
	}
	if p := firstString(v, usedPctKeys...); strings.Contains(p, "%") {
		return p
	}
	return ""
}

// firstString returns the first non-empty value among the alias keys. Wrong
// types stringify, absence degrades to "".
func firstString(v gjson.Result, keys ...string) string {
	for _, key := range keys {
		got := v.Get(key)
		if !got.Exists() {
			continue
		}
		if s := strings.TrimSpace(got.String()); s != "" {
			return s
		}
	}
	return ""
}

func rawPreview(root gjson.Result) string {
	var buf []byte
	var obj any
	if err := json.Unmarshal([]byte(root.Raw), &obj); err == nil {
		buf, _ = json.MarshalIndent(obj, "", "  ")
	} else {
		buf = []byte(root.Raw)
	}
	s := string(buf)
	if len(s) > rawPreviewLimit {
		s = s[:rawPreviewLimit] + "…"
	}
	return s
}

// RenderReport formats a report as a Markdown message.
func RenderReport(rep model.QuotaReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📡 *Cek Kuota* `%s`\n", rep.MSISDN)
	fmt.Fprintf(&b, "Status HTTP: `%d`\n", rep.HTTPStatus)

	switch rep.Kind {
	case model.ReportError:
		fmt.Fprintf(&b, "❌ *Error*: `%s`\n", rep.ErrorMessage)
		if rep.UpstreamStatus != "" {
			fmt.Fprintf(&b, "Upstream status: `%s`\n", rep.UpstreamStatus)
		}
	case model.ReportEmpty:
		b.WriteString("_Cek berhasil, tidak ada data kuota._\n")
	case model.ReportRaw:
		b.WriteString("```json\n")
		b.WriteString(rep.RawPreview)
		b.WriteString("\n```\n")
	case model.ReportPackages:
		for _, pkg := range rep.Packages {
			fmt.Fprintf(&b, "\n📦 *%s* (exp: %s)\n", pkg.Name, pkg.Expiry)
			for _, li := range pkg.Details {
				b.WriteString(renderLineItem(li))
			}
		}
	default:
		b.WriteString("_Tidak ada payload JSON dari server._\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderLineItem(li model.LineItem) string {
	var b strings.Builder
	b.WriteString("• ")
	if li.Benefit != "" {
		b.WriteString(li.Benefit)
	} else {
		b.WriteString("-")
	}
	if li.Kind != "" {
		fmt.Fprintf(&b, " [%s]", li.Kind)
	}
	switch {
	case li.Remaining != "" && li.Total != "":
		fmt.Fprintf(&b, ": %s / %s", li.Remaining, li.Total)
	case li.Remaining != "":
		fmt.Fprintf(&b, ": %s", li.Remaining)
	case li.Total != "":
		fmt.Fprintf(&b, ": total %s", li.Total)
	}
	if li.Percent != "" {
		fmt.Fprintf(&b, " (%s)", li.Percent)
	}
	b.WriteString("\n")
	return b.String()
}

// Render is the full pipeline from one upstream response to a display string.
func Render(msisdn string, status int, body []byte) string {
	return RenderReport(ParseReport(msisdn, status, body))
}
