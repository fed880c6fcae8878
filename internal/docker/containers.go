package docker

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"

	"github.com/mmr-tortoise/stackctl/internal/model"
)

// Labels set by compose tools on every container they create.
const (
	LabelComposeProject = "com.docker.compose.project"
	LabelComposeService = "com.docker.compose.service"
)

// ProjectContainers lists all containers, stopped ones included, that
// belong to the named compose project. Results are sorted by service, then
// by name.
func ProjectContainers(ctx context.Context, cli *Client, project string) ([]model.ServiceContainer, error) {
	// Filter server-side on the compose project label.
	args := filters.NewArgs(filters.Arg("label", LabelComposeProject+"="+project))

	summaries, err := cli.inner.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: args,
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDockerNotRunning,
			fmt.Sprintf("failed to list containers of project %q", project), err)
	}

	result := make([]model.ServiceContainer, 0, len(summaries))
	for _, s := range summaries {
		result = append(result, toServiceContainer(s))
	}
	sortContainers(result)
	return result, nil
}

// toServiceContainer maps an API container summary to the domain type.
// The API returns names with a leading "/", which is stripped.
func toServiceContainer(s container.Summary) model.ServiceContainer {
	name := ""
	if len(s.Names) > 0 {
		name = strings.TrimPrefix(s.Names[0], "/")
	}
	return model.ServiceContainer{
		ID:      s.ID,
		Name:    name,
		Service: s.Labels[LabelComposeService],
		State:   string(s.State),
	}
}

func sortContainers(cs []model.ServiceContainer) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Service != cs[j].Service {
			return cs[i].Service < cs[j].Service
		}
		return cs[i].Name < cs[j].Name
	})
}

// CountRunning returns how many containers are in the "running" state.
func CountRunning(cs []model.ServiceContainer) int {
	n := 0
	for _, c := range cs {
		if c.State == "running" {
			n++
		}
	}
	return n
}
