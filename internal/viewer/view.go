package viewer

import (
	"fmt"

	"github.com/kritikayadav/screener-backend/internal/apperrors"
	"github.com/kritikayadav/screener-backend/internal/chart"
	"github.com/kritikayadav/screener-backend/internal/display"
	"github.com/kritikayadav/screener-backend/internal/model"
)

// Panel is the primary view the page should render.
type Panel string

const (
	PanelLogin    Panel = "login"
	PanelLoading  Panel = "loading"
	PanelUpsell   Panel = "upsell"
	PanelScreener Panel = "screener"
)

const membershipLink = "/membership"

// View is a snapshot of a viewer, shaped for the page.
type View struct {
	ID       string        `json:"id"`
	Panel    Panel         `json:"panel"`
	LoggedIn bool          `json:"loggedIn"`
	Loading  bool          `json:"loading"`
	Options  []Option      `json:"options"`
	Selected *SelectedView `json:"selected"`
	Usage    *UsageView    `json:"usage,omitempty"`
	Chart    ChartView     `json:"chart"`
	Warning  string        `json:"warning,omitempty"`
	Prompt   *Prompt       `json:"prompt,omitempty"`
}

// Option is one entry of the stock picker.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// SelectedView describes the selected stock.
type SelectedView struct {
	Ticker                 string             `json:"ticker"`
	Name                   string             `json:"name"`
	Price                  string             `json:"price"`
	PriceDisplay           string             `json:"priceDisplay"`
	Change                 string             `json:"change,omitempty"`
	ChangeDirection        display.Direction  `json:"changeDirection,omitempty"`
	ChangePercent          string             `json:"changePercent,omitempty"`
	ChangePercentDirection display.Direction  `json:"changePercentDirection,omitempty"`
	Valuation              string             `json:"valuation"`
	ValuationTone          display.Tone       `json:"valuationTone"`
	Fundamentals           string             `json:"fundamentals"`
	FundamentalsTone       display.Tone       `json:"fundamentalsTone"`
	Rating                 string             `json:"rating,omitempty"`
	InfoGrid               []display.InfoItem `json:"infoGrid"`
	Record                 model.StockRecord  `json:"record"`
}

// UsageView is the usage badge.
type UsageView struct {
	CurrentCount int  `json:"currentCount"`
	Remaining    int  `json:"remaining"`
	LimitReached bool `json:"limitReached"`
	DailyLimit   int  `json:"dailyLimit"`
}

// ChartView is the chart panel.
type ChartView struct {
	State      model.ChartState `json:"state"`
	Generation uint64           `json:"generation"`
	Ticker     string           `json:"ticker,omitempty"`
	Points     []PointView      `json:"points"`
	Summary    *chart.Summary   `json:"summary,omitempty"`
	Error      string           `json:"error,omitempty"`
}

// PointView is one chart point.
type PointView struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Close float64 `json:"close"`
}

// Prompt is a call to action replacing the screener: the login prompt or
// the membership upsell.
type Prompt struct {
	Title    string `json:"title,omitempty"`
	Message  string `json:"message"`
	Link     string `json:"link"`
	LinkText string `json:"linkText"`
}

// View returns a snapshot of the viewer's current state.
func (v *Viewer) View() View {
	v.mu.Lock()
	defer v.mu.Unlock()

	view := View{
		ID:       v.id.String(),
		LoggedIn: v.session.LoggedIn(),
		Loading:  v.loading,
		Options:  make([]Option, len(v.stocks)),
		Chart:    v.chartViewLocked(),
	}

	for i, s := range v.stocks {
		view.Options[i] = Option{
			Value: s.Ticker(),
			Label: fmt.Sprintf("%s - %s", s.Ticker(), s.Name()),
		}
	}

	if v.selected >= 0 {
		view.Selected = selectedView(v.stocks[v.selected])
	}

	if v.usage != nil {
		view.Usage = &UsageView{
			CurrentCount: v.usage.CurrentCount,
			Remaining:    v.usage.Remaining,
			LimitReached: v.limitReached,
			DailyLimit:   v.deps.DailyLimit,
		}
	}

	switch {
	case !view.LoggedIn:
		view.Panel = PanelLogin
		view.Prompt = &Prompt{
			Message:  "Login to access the stock analysis feature.",
			Link:     "/login",
			LinkText: "Login to View Stocks",
		}
	case v.loading:
		view.Panel = PanelLoading
	case v.limitReached:
		view.Panel = PanelUpsell
		view.Warning = apperrors.ErrLimitReached.Error()
		view.Prompt = &Prompt{
			Title: "Daily Limit Reached",
			Message: fmt.Sprintf(
				"You've reached your daily limit of %d screener requests. Please try again tomorrow.",
				v.deps.DailyLimit,
			),
			Link:     membershipLink,
			LinkText: "Upgrade Membership for Premium Screener",
		}
	default:
		view.Panel = PanelScreener
	}

	return view
}

func (v *Viewer) chartViewLocked() ChartView {
	cv := ChartView{
		State:      v.chart.state,
		Generation: v.chart.generation,
		Ticker:     v.chart.ticker,
		Points:     make([]PointView, len(v.chart.points)),
		Error:      v.chart.err,
	}
	for i, p := range v.chart.points {
		cv.Points[i] = PointView{Date: p.DateString(), Label: p.Label, Close: p.Close}
	}
	if len(v.chart.points) > 0 {
		summary := chart.Summarize(v.chart.points)
		cv.Summary = &summary
	}
	return cv
}

func selectedView(s model.StockRecord) *SelectedView {
	change := s.Value(model.FieldChange)
	changePct := s.Value(model.FieldChangePercent)
	valuation := s.Value(model.FieldValuation)
	fundamentals := s.Value(model.FieldFundamentals)

	sv := &SelectedView{
		Ticker:           s.Ticker(),
		Name:             s.Name(),
		Price:            s.LTP(),
		PriceDisplay:     display.FormatPrice(s.LTP()),
		Change:           change,
		ChangePercent:    changePct,
		Valuation:        valuation,
		ValuationTone:    display.ValuationTone(valuation),
		Fundamentals:     fundamentals,
		FundamentalsTone: display.FundamentalsTone(fundamentals),
		Rating:           s.Value(model.FieldRating),
		InfoGrid:         display.InfoGrid(s),
		Record:           s,
	}
	if change != "" {
		sv.ChangeDirection = display.ChangeDirection(change)
	}
	if changePct != "" {
		sv.ChangePercentDirection = display.ChangeDirection(changePct)
	}
	return sv
}
