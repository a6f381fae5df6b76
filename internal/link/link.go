// Package link は診断の位置からホスティング上の URL を組み立てます。
package link

import (
	"fmt"
	"path"

	"github.com/phyten/dslint/internal/gitremote"
)

// Line は info.Revision 時点の file の line 行目を指す blob URL を返します。
// file は検査したディレクトリからの相対パスで、info.Prefix を前に付けて解決します。
// リビジョンやファイルが不明なら空文字です。
func Line(info gitremote.Info, file string, line int) string {
	if info.Revision == "" || info.Host == "" || file == "" || line <= 0 {
		return ""
	}
	return fmt.Sprintf("%s/blob/%s/%s#L%d", info.WebURL(), info.Revision, gitremote.BlobPath(path.Join(info.Prefix, file)), line)
}

// Range は複数行にまたがる診断を #L<start>-L<end> で指します。
func Range(info gitremote.Info, file string, start, end int) string {
	base := Line(info, file, start)
	if base == "" || end <= start {
		return base
	}
	return fmt.Sprintf("%s-L%d", base, end)
}
