package main

import (
	"errors"
	"strings"

	"github.com/piwi3910/LoadPlanner/internal/model"
)

// containerList collects catalog ids from a comma separated flag value.
// The flag may be repeated; ids accumulate in the order given.
type containerList []string

func (cl *containerList) String() string {
	return strings.Join(*cl, ",")
}

func (cl *containerList) Set(value string) error {
	var ids []string
	for _, id := range strings.Split(value, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return errors.New("need at least one container id")
	}
	if _, err := model.LookupContainers(ids); err != nil {
		return err
	}
	*cl = append(*cl, ids...)
	return nil
}
