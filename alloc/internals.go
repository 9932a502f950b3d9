package alloc

import "fmt"

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("alloc: "+msg, msgargs...)
		panic(msg)
	}
}
