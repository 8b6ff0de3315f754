package dietdesk

import (
	"github.com/agentstation/dietdesk/pkg/carousel"
	"github.com/agentstation/dietdesk/pkg/records"
)

// pager is a record list shown one page at a time through a carousel.
type pager[T any] struct {
	all  []T
	page int
	size int
	view *carousel.Carousel[T]
}

func newPager[T any](size int, opts ...carousel.Option) *pager[T] {
	return &pager[T]{page: 1, size: size, view: carousel.New[T](nil, opts...)}
}

// reset loads a new list and shows its first page from the start.
func (p *pager[T]) reset(all []T) {
	p.all = all
	p.page = 1
	items, _ := records.Page(all, 1, p.size)
	p.view.Reset(items)
}

// show moves to another page of the same list.
func (p *pager[T]) show(page int) error {
	items, err := records.Page(p.all, page, p.size)
	if err != nil {
		return err
	}
	p.page = page
	p.view.Reset(items)
	return nil
}

// refresh swaps in an updated version of the same list and keeps the cursor.
// A page past the end of a shrunk list falls back to the last page.
func (p *pager[T]) refresh(all []T) {
	p.all = all
	p.page = min(p.page, max(1, records.Pages(len(all), p.size)))
	items, _ := records.Page(all, p.page, p.size)
	p.view.Replace(items)
}

func (p *pager[T]) current() (T, carousel.Position, bool) {
	item, ok := p.view.Current()
	return item, p.view.Position(), ok
}

// PageInfo describes which page of a record list is shown.
type PageInfo struct {
	Page  int `json:"page" yaml:"page"`
	Pages int `json:"pages" yaml:"pages"`
	Total int `json:"total" yaml:"total"`
}

func (p *pager[T]) info() PageInfo {
	return PageInfo{Page: p.page, Pages: records.Pages(len(p.all), p.size), Total: len(p.all)}
}

// CurrentSurvey returns the survey under the cursor and its position.
func (w *Workspace) CurrentSurvey() (records.Survey, carousel.Position, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.surveys.current()
}

// NextSurvey steps to the next survey, wrapping around.
func (w *Workspace) NextSurvey() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surveys.view.Next()
}

// PreviousSurvey steps to the previous survey, wrapping around.
func (w *Workspace) PreviousSurvey() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surveys.view.Previous()
}

// SurveyPage shows another page of surveys, starting at its first record.
func (w *Workspace) SurveyPage(page int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.surveys.show(page)
}

// SurveyPages describes the survey paging state.
func (w *Workspace) SurveyPages() PageInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.surveys.info()
}

// RefreshSurveys replaces the surveys of the current client without moving
// the cursor, clamping it if the list shrank.
func (w *Workspace) RefreshSurveys(surveys []records.Survey) {
	sorted := append([]records.Survey(nil), surveys...)
	records.SortSurveys(sorted)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.client.Surveys = surveys
	w.surveys.refresh(sorted)
}

// CurrentBloodReport returns the blood report under the cursor and its position.
func (w *Workspace) CurrentBloodReport() (records.BloodReport, carousel.Position, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blood.current()
}

// NextBloodReport steps to the next blood report, wrapping around.
func (w *Workspace) NextBloodReport() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blood.view.Next()
}

// PreviousBloodReport steps to the previous blood report, wrapping around.
func (w *Workspace) PreviousBloodReport() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.blood.view.Previous()
}

// BloodReportPage shows another page of blood reports.
func (w *Workspace) BloodReportPage(page int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blood.show(page)
}

// BloodReportPages describes the blood report paging state.
func (w *Workspace) BloodReportPages() PageInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blood.info()
}

// RefreshBloodReports replaces the blood reports of the current client
// without moving the cursor.
func (w *Workspace) RefreshBloodReports(reports []records.BloodReport) {
	sorted := append([]records.BloodReport(nil), reports...)
	records.SortBloodReports(sorted)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.client.BloodReports = reports
	w.blood.refresh(sorted)
}
