package respond

import "fmt"

// Canned replies returned without touching the model. The wording is part of
// the product surface and must stay byte for byte stable.
const (
	// MsgEmptyQuery answers a blank or whitespace-only query.
	MsgEmptyQuery = "なになに？聞こえなかった〜！もう一回話してくれる？"

	// MsgFailure answers any query that hit an internal error.
	MsgFailure = "ヤバイ！エラーが出ちゃった！もう一回やってみてくれる？"
)

// NotFoundGeneric is the empty-result reply for semantic search.
func NotFoundGeneric(query string) string {
	return fmt.Sprintf("ごめん！「%s」の情報、マジ見つからなかった〜！別のキーワードで試してみてくれない？", query)
}

// NotFoundName is the empty-result reply for exact booth-name lookup.
func NotFoundName(name string) string {
	return fmt.Sprintf("ごめん！「%s」っていうサークル、マジ見つからなかった〜！もしかして名前違うかも？別の言い方で検索してみてくれない？", name)
}

// NotFoundHandle is the empty-result reply for Twitter-handle lookup.
func NotFoundHandle(handle string) string {
	return fmt.Sprintf("ごめん！Twitterアカウント「%s」で見つからなかった〜！別のアカウントで試してみてね？", handle)
}
