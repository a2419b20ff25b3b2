// Package qna reshapes a quiz question/answer dataset into derived JSON
// documents.
//
// # Quick Start
//
//	p, err := qna.New("data/input.json", "data/output", qna.DefaultOutputs())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	written, err := p.Run(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(written)
//
// # Outputs
//
// Each Output pairs a file name with a transform.Spec. The dataset is loaded
// once per Run and every output is derived from the same records, so outputs
// never see each other's filtering or sorting.
//
// # Title keywords
//
// Rich pairs can carry a secondary category derived from the question
// title by textnorm.ExtractKeyword: the subject before cues such as
// "에 대한" or "과 관련된", with leading "[n]" and "다음 중" removed.
//
// # Answer cleanup
//
// Package dedupe holds the cleanup passes run over flattened answer lists:
// meaningless-answer filtering, exact duplicate removal and TF-IDF
// similarity grouping.
package qna
