// Copyright 2026 The rs4lk Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package check

import (
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Report writes results as a table. Verdicts are colored if colored is set.
func Report(w io.Writer, results []Result, colored bool) {
	noColor := color.New()
	statusGood := noColor
	statusBad := noColor
	if colored {
		statusGood = color.New(color.FgGreen)
		statusBad = color.New(color.FgRed)
	}

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		verdict := statusGood.Sprint("PASSED")
		detail := r.Message
		switch {
		case r.Err != nil:
			verdict = statusBad.Sprint("ERROR")
			detail = r.Err.Error()
		case !r.Passed:
			verdict = statusBad.Sprint("FAILED")
		}
		rows = append(rows, []string{
			r.Name,
			r.DisplayName,
			verdict,
			r.Duration.Round(time.Millisecond).String(),
			detail,
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"CHECK", "NAME", "RESULT", "DURATION", "DETAIL"})
	table.AppendBulk(rows)
	table.Render()
}
