package output

import (
	"bufio"
	"io"
	"strconv"

	"github.com/chazu/linework/pkg/path"
)

// WriteText writes one path per line as x,y pairs separated by semicolons.
func WriteText(w io.Writer, ps path.Paths) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, p := range ps {
		buf = buf[:0]
		for i, v := range p {
			if i > 0 {
				buf = append(buf, ';')
			}
			buf = strconv.AppendFloat(buf, v.X, 'g', -1, 64)
			buf = append(buf, ',')
			buf = strconv.AppendFloat(buf, v.Y, 'g', -1, 64)
		}
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}
