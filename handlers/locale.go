package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/language"

	"devroutine/models"
)

const (
	LocaleKorean  = "ko"
	LocaleEnglish = "en"
)

// Korean comes first so it wins when nothing matches.
var localeMatcher = language.NewMatcher([]language.Tag{language.Korean, language.English})

// NegotiateLocale picks ko or en from ?lang= and Accept-Language.
func NegotiateLocale(r *http.Request) string {
	tag, _ := language.MatchStrings(localeMatcher, r.URL.Query().Get("lang"), r.Header.Get("Accept-Language"))
	base, _ := tag.Base()
	if base.String() == LocaleEnglish {
		return LocaleEnglish
	}
	return LocaleKorean
}

type localeStrings struct {
	weekdays         []string
	streak           string
	routineHeading   string
	tipHeading       string
	messageHeading   string
	upcomingHeading  string
	titlePlaceholder string
	save             string
	cancel           string
	deadlineTypes    map[string]string
	monthTitle       func(ym models.YearMonth) string
	modalHeading     func(d models.CalendarDate) string
}

var locales = map[string]localeStrings{
	LocaleKorean: {
		weekdays:         []string{"일", "월", "화", "수", "목", "금", "토"},
		streak:           "%d일 연속 루틴 유지 중!",
		routineHeading:   "오늘의 루틴",
		tipHeading:       "오늘의 한 줄 지식",
		messageHeading:   "나에게 온 메시지",
		upcomingHeading:  "다가오는 일정",
		titlePlaceholder: "일정 제목",
		save:             "저장",
		cancel:           "취소",
		deadlineTypes: map[string]string{
			string(models.DeadlineDocument):  "서류 마감",
			string(models.DeadlineCoding):    "코딩테스트",
			string(models.DeadlineInterview): "면접",
			string(models.DeadlineBasic):     "기본 일정",
		},
		monthTitle: func(ym models.YearMonth) string {
			return fmt.Sprintf("%d년 %d월", ym.Year, ym.Month+1)
		},
		modalHeading: func(d models.CalendarDate) string {
			return fmt.Sprintf("%d일 일정 추가", d.Day)
		},
	},
	LocaleEnglish: {
		weekdays:         []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		streak:           "%d-day routine streak!",
		routineHeading:   "Today's routine",
		tipHeading:       "Today's one-liner",
		messageHeading:   "A message for you",
		upcomingHeading:  "Upcoming",
		titlePlaceholder: "Event title",
		save:             "Save",
		cancel:           "Cancel",
		deadlineTypes: map[string]string{
			string(models.DeadlineDocument):  "Document deadline",
			string(models.DeadlineCoding):    "Coding test",
			string(models.DeadlineInterview): "Interview",
			string(models.DeadlineBasic):     "Event",
		},
		monthTitle: func(ym models.YearMonth) string {
			return fmt.Sprintf("%s %d", ym.TimeMonth(), ym.Year)
		},
		modalHeading: func(d models.CalendarDate) string {
			return fmt.Sprintf("Add event on %s %d", d.Month, d.Day)
		},
	},
}

// LabelsFor returns the localized labels of view. Unknown locales fall back to Korean.
func LabelsFor(locale string, view models.DashboardView) *models.Labels {
	ls, ok := locales[strings.ToLower(locale)]
	if !ok {
		locale, ls = LocaleKorean, locales[LocaleKorean]
	}

	types := make(map[string]string, len(ls.deadlineTypes))
	for k, v := range ls.deadlineTypes {
		types[k] = v
	}

	labels := &models.Labels{
		Locale:           locale,
		MonthTitle:       ls.monthTitle(view.State.Displayed()),
		Weekdays:         append([]string(nil), ls.weekdays...),
		RoutineHeading:   ls.routineHeading,
		TipHeading:       ls.tipHeading,
		MessageHeading:   ls.messageHeading,
		UpcomingHeading:  ls.upcomingHeading,
		TitlePlaceholder: ls.titlePlaceholder,
		Save:             ls.save,
		Cancel:           ls.cancel,
		DeadlineTypes:    types,
	}
	if view.StreakDays > 0 {
		labels.StreakBadge = fmt.Sprintf(ls.streak, view.StreakDays)
	}
	if view.Modal.Open && view.Modal.Date != nil {
		labels.ModalHeading = ls.modalHeading(*view.Modal.Date)
	}
	return labels
}

// localize attaches labels for the request's locale to view.
func localize(r *http.Request, view models.DashboardView) models.DashboardView {
	view.Labels = LabelsFor(NegotiateLocale(r), view)
	return view
}
