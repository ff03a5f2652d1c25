package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/storefront-gateway/internal/api/client"
	domain "github.com/donaldgifford/storefront-gateway/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printProductsTable(w io.Writer, products []domain.ProductSummary) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tPRICE\tINSTANT\tSLUG\n")
	for i := range products {
		p := &products[i]
		instant := "-"
		if p.InstantShipPrice != nil {
			instant = fmt.Sprintf("$%.2f", *p.InstantShipPrice)
		}
		tw.writef("%s\t%s\t$%.2f\t%s\t%s\n",
			p.ID,
			truncate(p.Name, 40),
			p.Price,
			instant,
			p.Slug,
		)
	}
	return tw.finish()
}

func printPageFooter(w io.Writer, page int, total *int, hasMore bool) error {
	totalText := "unknown"
	if total != nil {
		totalText = strconv.Itoa(*total)
	}
	_, err := fmt.Fprintf(w, "\npage %d, total %s, more: %v\n", page, totalText, hasMore)
	return err
}

func printBrandsTable(w io.Writer, brands []domain.BrandSummary) error {
	tw := newTabWriter(w)
	tw.writef("NAME\tSLUG\n")
	for i := range brands {
		tw.writef("%s\t%s\n", brands[i].Name, brands[i].Slug)
	}
	return tw.finish()
}

func printProductDetail(w io.Writer, p *apiclient.ProductResponse) error {
	var data struct {
		ID   any    `json:"id"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	_ = json.Unmarshal(p.Data, &data)

	tw := newTabWriter(w)
	tw.writef("ID:\t%v\n", data.ID)
	tw.writef("Name:\t%s\n", data.Name)
	tw.writef("Slug:\t%s\n", data.Slug)
	tw.writef("Price:\t%s\n", enrichmentSummary(p.PriceData))

	if marker, failed := apiclient.Unavailable(p.RecommendedProducts); failed {
		tw.writef("Recommended:\tunavailable (%s)\n", marker.Error)
	} else {
		var recs []json.RawMessage
		_ = json.Unmarshal(p.RecommendedProducts, &recs)
		tw.writef("Recommended:\t%d products\n", len(recs))
	}
	return tw.finish()
}

func enrichmentSummary(raw json.RawMessage) string {
	if marker, failed := apiclient.Unavailable(raw); failed {
		return "unavailable (" + marker.Error + ")"
	}
	return truncate(string(raw), 60)
}

func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

func printRate(w io.Writer, r *apiclient.RateResponse) error {
	rate := "-"
	if r.Rate != nil {
		rate = strconv.FormatFloat(*r.Rate, 'f', 2, 64)
	}

	tw := newTabWriter(w)
	tw.writef("Rate:\t%s\n", rate)
	tw.writef("Captured:\t%s\n", r.Timestamp.Format(time.RFC3339))
	return tw.finish()
}

func printQuotaTable(w io.Writer, quotas []apiclient.UpstreamQuota) error {
	tw := newTabWriter(w)
	tw.writef("UPSTREAM\tLIMIT\tUSED\tREMAINING\tRESETS\n")
	for i := range quotas {
		q := &quotas[i]
		limit, remaining := "unlimited", "-"
		if q.DailyLimit > 0 {
			limit = strconv.FormatInt(q.DailyLimit, 10)
			remaining = strconv.FormatInt(q.Remaining, 10)
		}
		tw.writef("%s\t%s\t%d\t%s\t%s\n",
			q.Upstream,
			limit,
			q.DailyUsed,
			remaining,
			q.ResetAt.Format("2006-01-02 15:04:05"),
		)
	}
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
