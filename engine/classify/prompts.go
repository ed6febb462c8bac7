package classify

import "fmt"

// classifyPrompt instructs the model to emit exactly one category token.
// Name/handle categories must wrap their literal payload in angle brackets
// right after the token; the output is still treated as untrusted free text.
const classifyPrompt = `あなたは文学フリマ案内チャットのクエリ分類器です。以下のユーザーの質問を読み、次の5つのカテゴリのうち1つだけを出力してください。

- BOOTH_NAME_SEARCH<サークル名> : 特定のサークル（ブース）名を名指しで探している場合。山括弧の中にサークル名をそのまま入れること。
  例: 「サークル『文芸同盟』はどこ？」 → BOOTH_NAME_SEARCH<文芸同盟>
- BOOTH_HANDLE_SEARCH<アカウント名> : X（Twitter）アカウントでサークルを探している場合。山括弧の中にアカウント名を入れること。
  例: 「@bungaku_taroのブースある？」 → BOOTH_HANDLE_SEARCH<@bungaku_taro>
- VECTOR_SEARCH : ジャンル・内容・雰囲気などでサークルや作品を探している場合。
  例: 「SF系の面白い小説ある？」 → VECTOR_SEARCH
- EVENT_INFO : 開催日時・場所・入場方法・支払いなど文学フリマというイベント自体の情報を求めている場合。
- GENERAL_CHAT : 挨拶や雑談など、検索を必要としない会話の場合。

カテゴリトークン以外の文章は出力しないでください。

ユーザーの質問: %s`

// rewritePrompt converts a conversational question into a standalone search
// string optimized for vector retrieval. This is a second, separate call,
// made only when the classifier supplied no usable payload.
const rewritePrompt = `次のユーザーの質問を、文学フリマのサークル・作品カタログに対するベクトル検索用の短い検索文に書き換えてください。会話的な表現や疑問形は取り除き、ジャンル・題材・形式などの検索に役立つ語だけを残してください。検索文のみを出力してください。

ユーザーの質問: %s

検索文:`

func renderClassifyPrompt(query string) string {
	return fmt.Sprintf(classifyPrompt, query)
}

func renderRewritePrompt(query string) string {
	return fmt.Sprintf(rewritePrompt, query)
}
