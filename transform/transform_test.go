package transform

import (
	"errors"
	"reflect"
	"testing"

	"github.com/jamesainslie/go-qna/dataset"
)

func answer(qid, id int, title string, kind dataset.AnswerKind) dataset.Answer {
	return dataset.Answer{QuestionID: qid, ID: id, Title: title, AnswerKind: kind}
}

func sampleQuestions() []dataset.Question {
	return []dataset.Question{
		{
			ID: 1, Title: "[1] 다음 중 세포 호흡에 대한 설명으로 옳은 것은?",
			TitleType: dataset.Positive, CategoryTitle: "생물",
			AnswerSet: []dataset.Answer{
				answer(1, 10, "<p>미토콘드리아에서 일어난다.</p>", dataset.KindO),
				answer(1, 11, "<p>엽록체에서 일어난다.</p>", dataset.KindX),
			},
		},
		{
			ID: 2, Title: "기타 안내 문항",
			TitleType: dataset.Etc, CategoryTitle: "공통",
			AnswerSet: []dataset.Answer{answer(2, 20, "<p>안내</p>", dataset.KindO)},
		},
		{
			ID: 3, Title: "[3] 다음 중 조선 시대에 해당하지 않는 것은?",
			TitleType: dataset.Negative, CategoryTitle: "역사",
			AnswerSet: []dataset.Answer{
				answer(3, 30, "<p>훈민정음 창제</p>", dataset.KindO),
				answer(3, 31, "<p>고려 건국</p>", dataset.KindX),
			},
		},
		{
			ID: 4, Title: "광합성과 관련된 설명으로 옳은 것은?",
			TitleType: dataset.Positive, CategoryTitle: "생물",
			AnswerSet: []dataset.Answer{answer(4, 40, "빛 에너지를 쓴다.", dataset.KindO)},
		},
	}
}

func TestGradable(t *testing.T) {
	in := sampleQuestions()
	got := Gradable(in)

	var want []int
	for _, q := range in {
		if q.TitleType != dataset.Etc {
			want = append(want, q.ID)
		}
	}
	var gotIDs []int
	for _, q := range got {
		gotIDs = append(gotIDs, q.ID)
	}
	if !reflect.DeepEqual(gotIDs, want) {
		t.Errorf("Gradable() ids = %v, want %v", gotIDs, want)
	}
	if len(in) != 4 {
		t.Errorf("Gradable modified its input")
	}
}

func TestLabeledTitles(t *testing.T) {
	got := LabeledTitles(sampleQuestions()[:1])
	want := []string{"[1] [생물] [1] 다음 중 세포 호흡에 대한 설명으로 옳은 것은?"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LabeledTitles() = %q, want %q", got, want)
	}
}

func TestAnswerProjections(t *testing.T) {
	qs := Gradable(sampleQuestions())[:1]

	if got, want := AnswerTexts(qs, true), []string{"미토콘드리아에서 일어난다.", "엽록체에서 일어난다."}; !reflect.DeepEqual(got, want) {
		t.Errorf("AnswerTexts(strip) = %q, want %q", got, want)
	}
	if got := AnswerTexts(qs, false)[0]; got != "<p>미토콘드리아에서 일어난다.</p>" {
		t.Errorf("AnswerTexts(raw)[0] = %q", got)
	}
	if got, want := LabeledAnswers(qs, true)[1], "[1-11] 엽록체에서 일어난다."; got != want {
		t.Errorf("LabeledAnswers()[1] = %q, want %q", got, want)
	}
	wantObjects := []AnswerObject{{ID: 10, Answer: "미토콘드리아에서 일어난다."}, {ID: 11, Answer: "엽록체에서 일어난다."}}
	if got := AnswerObjects(qs, true); !reflect.DeepEqual(got, wantObjects) {
		t.Errorf("AnswerObjects() = %+v, want %+v", got, wantObjects)
	}
}

func TestPairs(t *testing.T) {
	pairs := Pairs(Gradable(sampleQuestions()), PairOptions{StripMarkup: true, IncludeKeyword: true})
	if len(pairs) != 3 {
		t.Fatalf("got %d pairs, want 3", len(pairs))
	}

	tests := []struct {
		name      string
		pair      Pair
		category2 string
		answers   []PairAnswer
	}{
		{
			name:      "positive polarity",
			pair:      pairs[0],
			category2: "세포 호흡",
			answers: []PairAnswer{
				{ID: 10, Answer: "미토콘드리아에서 일어난다.", IsCorrect: true, IsTrue: true},
				{ID: 11, Answer: "엽록체에서 일어난다.", IsCorrect: false, IsTrue: false},
			},
		},
		{
			name:      "negative polarity",
			pair:      pairs[1],
			category2: "조선 시대",
			answers: []PairAnswer{
				{ID: 30, Answer: "훈민정음 창제", IsCorrect: true, IsTrue: false},
				{ID: 31, Answer: "고려 건국", IsCorrect: false, IsTrue: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.pair.Category2 != tt.category2 {
				t.Errorf("Category2 = %q, want %q", tt.pair.Category2, tt.category2)
			}
			if !reflect.DeepEqual(tt.pair.Answers, tt.answers) {
				t.Errorf("Answers = %+v, want %+v", tt.pair.Answers, tt.answers)
			}
		})
	}

	plain := Pairs(sampleQuestions()[:1], PairOptions{})
	if plain[0].Category2 != "" {
		t.Errorf("Category2 without keyword = %q, want empty", plain[0].Category2)
	}
	if plain[0].Answers[0].Answer != "<p>미토콘드리아에서 일어난다.</p>" {
		t.Errorf("unstripped answer = %q", plain[0].Answers[0].Answer)
	}
}

func TestSimplePairs_FullDump(t *testing.T) {
	got := SimplePairs(sampleQuestions())
	if len(got) != 4 {
		t.Fatalf("got %d pairs, want 4 (ETC kept)", len(got))
	}
	if got[1].Question != "기타 안내 문항" || !reflect.DeepEqual(got[1].Answers, []string{"<p>안내</p>"}) {
		t.Errorf("SimplePairs()[1] = %+v", got[1])
	}
}

func TestFlattenPairs(t *testing.T) {
	pairs := Pairs(sampleQuestions()[2:3], PairOptions{StripMarkup: true, IncludeKeyword: true})
	entries := FlattenPairs(pairs)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	e := entries[1]
	if e.ID != 31 || e.QuestionID != 3 || e.Category1 != "역사" || e.Category2 != "조선 시대" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.IsTrue == nil || !*e.IsTrue || e.IsCorrect == nil || *e.IsCorrect {
		t.Errorf("unexpected flags: isCorrect=%v isTrue=%v", e.IsCorrect, e.IsTrue)
	}
}

func TestSortByCategory(t *testing.T) {
	in := []dataset.Question{
		{ID: 1, CategoryTitle: "역사"},
		{ID: 2, CategoryTitle: "생물"},
		{ID: 3, CategoryTitle: "가정"},
		{ID: 4, CategoryTitle: "생물"},
		{ID: 5, CategoryTitle: "역사"},
	}

	got := SortByCategory(in, "ko")

	var ids []int
	for _, q := range got {
		ids = append(ids, q.ID)
	}
	if want := []int{3, 2, 4, 1, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("SortByCategory() ids = %v, want %v", ids, want)
	}
	if in[0].ID != 1 {
		t.Error("SortByCategory modified its input")
	}
}

func TestSortByCategory_EmptyLocaleFallsBack(t *testing.T) {
	in := []dataset.Question{
		{ID: 1, CategoryTitle: "beta"},
		{ID: 2, CategoryTitle: "Alpha"},
		{ID: 3, CategoryTitle: "alpha"},
	}

	got := SortByCategory(in, "")
	if got[2].ID != 1 {
		t.Errorf("expected beta last, got order %+v", got)
	}
}

func TestGroup(t *testing.T) {
	items := []struct{ key, val string }{
		{"b", "1"}, {"a", "2"}, {"b", "3"}, {"", "4"}, {"a", "5"},
	}

	groups := Group(items, func(i struct{ key, val string }) string { return i.key })

	var keys []string
	total := 0
	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
		total += len(pair.Value)
	}
	if want := []string{"b", "a", Uncategorized}; !reflect.DeepEqual(keys, want) {
		t.Errorf("keys = %v, want %v", keys, want)
	}
	if total != len(items) {
		t.Errorf("grouped %d items, want %d", total, len(items))
	}

	b, _ := groups.Get("b")
	if len(b) != 2 || b[0].val != "1" || b[1].val != "3" {
		t.Errorf("bucket b = %+v, want input order", b)
	}
}

func TestNest(t *testing.T) {
	pairs := Pairs(Gradable(sampleQuestions()), PairOptions{IncludeKeyword: true})
	nested := Nest(pairs,
		func(p Pair) string { return p.Category1 },
		func(p Pair) string { return p.Category2 },
	)

	if nested.Len() != 2 {
		t.Fatalf("got %d outer groups, want 2", nested.Len())
	}
	bio, ok := nested.Get("생물")
	if !ok {
		t.Fatal("missing 생물 group")
	}
	var inner []string
	for pair := bio.Oldest(); pair != nil; pair = pair.Next() {
		inner = append(inner, pair.Key)
	}
	if want := []string{"세포 호흡", "광합성"}; !reflect.DeepEqual(inner, want) {
		t.Errorf("inner keys = %v, want %v", inner, want)
	}
}

func TestCountLabeledCategories(t *testing.T) {
	lines := []string{
		"[1] [생물   기초] 다음 중 옳은 것은?",
		"[2] [역사] 옳은 것은?",
		"no label here",
		"[3] [생물 기초] 틀린 것은?",
	}

	counts := CountLabeledCategories(lines)

	var got []string
	for pair := counts.Oldest(); pair != nil; pair = pair.Next() {
		got = append(got, pair.Key)
	}
	if want := []string{"생물 기초", "역사"}; !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
	if n, _ := counts.Get("생물 기초"); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestApply_EndToEnd(t *testing.T) {
	questions := []dataset.Question{
		{ID: 1, Title: "안내", TitleType: dataset.Etc, CategoryTitle: "공통",
			AnswerSet: []dataset.Answer{answer(1, 1, "-", dataset.KindX)}},
		{ID: 2, Title: "세포에 대한 설명으로 옳은 것은?", TitleType: dataset.Positive, CategoryTitle: "생물",
			AnswerSet: []dataset.Answer{answer(2, 5, "<p>맞는 답</p>", dataset.KindO)}},
	}

	out, err := Apply(questions, Spec{Kind: KindQuestions, FilterNonGradable: true})
	if err != nil {
		t.Fatalf("Apply(questions) error = %v", err)
	}
	if !reflect.DeepEqual(out, []string{"세포에 대한 설명으로 옳은 것은?"}) {
		t.Errorf("questions = %v", out)
	}

	out, err = Apply(questions, Spec{Kind: KindPairs, FilterNonGradable: true, StripMarkup: true, IncludeKeyword: true})
	if err != nil {
		t.Fatalf("Apply(pairs) error = %v", err)
	}
	pairs, ok := out.([]Pair)
	if !ok || len(pairs) != 1 {
		t.Fatalf("pairs = %#v", out)
	}
	a := pairs[0].Answers[0]
	if !a.IsCorrect || !a.IsTrue || a.Answer != "맞는 답" {
		t.Errorf("answer = %+v, want correct and true", a)
	}
	if pairs[0].Category2 != "세포" {
		t.Errorf("category2 = %q, want 세포", pairs[0].Category2)
	}
}

func TestApply_Nesting(t *testing.T) {
	out, err := Apply(sampleQuestions(), Spec{Kind: KindFlatAnswers, FilterNonGradable: true, NestingDepth: 1})
	if err != nil {
		t.Fatal(err)
	}
	groups, ok := out.(*Groups[dataset.AnswerEntry])
	if !ok {
		t.Fatalf("got %T, want *Groups[AnswerEntry]", out)
	}
	bio, _ := groups.Get("생물")
	if len(bio) != 3 {
		t.Errorf("생물 bucket has %d entries, want 3", len(bio))
	}
}

func TestSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr bool
	}{
		{"questions text", Spec{Kind: KindQuestions}, false},
		{"answers object", Spec{Kind: KindAnswers, Format: FormatObject}, false},
		{"questions object", Spec{Kind: KindQuestions, Format: FormatObject}, true},
		{"unknown kind", Spec{Kind: "everything"}, true},
		{"pairs depth 2", Spec{Kind: KindPairs, NestingDepth: 2}, false},
		{"depth too deep", Spec{Kind: KindPairs, NestingDepth: 3}, true},
		{"questions nested", Spec{Kind: KindQuestions, NestingDepth: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSpec) {
				t.Errorf("Validate() error = %v, want ErrInvalidSpec", err)
			}
		})
	}
}
