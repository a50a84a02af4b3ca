package batch

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
)

const sectorTableHTML = `
<table class="type_1">
  <tr><th>Name</th><th>Change</th><th>Up</th><th>Flat</th><th>Down</th></tr>
  <tr>
    <td><a href="/sise/sise_group_detail.naver?type=upjong&no=278">Semiconductors</a></td>
    <td><span>+2.75%</span></td>
    <td>41</td><td>3</td><td>12</td>
  </tr>
  <tr>
    <td><a href="/sise/sise_group_detail.naver?type=upjong&no=151">Shipbuilding</a></td>
    <td><span>-1.20%</span></td>
    <td>2</td><td>1</td><td>9</td>
  </tr>
  <tr><td colspan="5">blank divider row</td></tr>
</table>`

const themeTableHTML = `
<table class="type_1">
  <tr>
    <td><a href="/sise/sise_group_detail.naver?type=theme&no=446">AI Chips</a></td>
    <td>+3.10%</td>
    <td>+1.05%</td>
    <td>15</td><td>0</td><td>4</td>
  </tr>
</table>`

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	assert.NoError(t, err)
	return doc
}

func TestParseSectors(t *testing.T) {
	s := NewNaverScraper(nil)

	sectors := s.parseSectors(docFrom(t, sectorTableHTML))

	assert.Len(t, sectors, 2)
	assert.Equal(t, "278", sectors[0].SectorCode)
	assert.Equal(t, "Semiconductors", sectors[0].SectorName)
	assert.InDelta(t, 2.75, sectors[0].ChangeRate, 0.001)
	assert.Equal(t, 41, sectors[0].UpTickerCount)
	assert.Equal(t, 3, sectors[0].NeutralTickerCount)
	assert.Equal(t, 12, sectors[0].DownTickerCount)
	assert.Contains(t, sectors[0].DetailURL, "no=278")

	assert.InDelta(t, -1.20, sectors[1].ChangeRate, 0.001)
}

func TestParseThemes(t *testing.T) {
	s := NewNaverScraper(nil)

	themes := s.parseThemes(docFrom(t, themeTableHTML))

	assert.Len(t, themes, 1)
	assert.Equal(t, "446", themes[0].ThemeCode)
	assert.Equal(t, "AI Chips", themes[0].ThemeName)
	assert.InDelta(t, 3.10, themes[0].ChangeRate, 0.001)
	assert.InDelta(t, 1.05, themes[0].AvgChangeRate3Days, 0.001)
	assert.Equal(t, 15, themes[0].UpTickerCount)
	assert.Equal(t, 4, themes[0].DownTickerCount)
}

func TestParseRate(t *testing.T) {
	assert.InDelta(t, 1.23, parseRate("+1.23%"), 0.001)
	assert.InDelta(t, -0.45, parseRate(" -0.45% "), 0.001)
	assert.InDelta(t, 1234.5, parseRate("+1,234.5%"), 0.001)
	assert.Equal(t, 0.0, parseRate("n/a"))
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, 1234, parseCount(" 1,234 "))
	assert.Equal(t, 0, parseCount("-"))
}

func TestParsePrice(t *testing.T) {
	assert.InDelta(t, 2501.53, parsePrice("+2501.53"), 0.001)
	assert.InDelta(t, -75.0, parsePrice("-75"), 0.001)
	assert.Equal(t, 0.0, parsePrice(""))
}
