package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"estate_listing_v1/internal/api/dto"
	"estate_listing_v1/internal/submit"
	"estate_listing_v1/pkg/client"
)

func newSubmitCmd(a *app) *cobra.Command {
	var (
		file    string
		assets  []string
		toggles []string
	)
	cmd := &cobra.Command{
		Use:   "submit agency|agent|project -f payload.yaml",
		Short: "Validate, upload assets and submit a listing",
		Long: `Submit a listing payload described in a YAML (or JSON) file.

Asset files are uploaded first and their public URLs are written into the
named field, for example --asset logo=./logo.png or --asset images=./a.jpg.
Multi-choice fields can be toggled with --toggle areasCovered=LAHORE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := client.ParseKind(args[0])
			if err != nil {
				return err
			}
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read payload: %w", err)
			}
			files, err := readAssets(assets)
			if err != nil {
				return err
			}
			flips, err := parsePairs(toggles)
			if err != nil {
				return err
			}

			deps := submit.Deps{
				Uploader:  a.client,
				Submitter: a.client,
				Notifier:  submit.NewLogNotifier(a.log),
				Log:       a.log,
			}
			ctx := cmd.Context()

			var out json.RawMessage
			switch kind {
			case client.KindAgency:
				var p dto.AgencyPayload
				if err := decodePayload(raw, &p); err != nil {
					return err
				}
				out, err = runForm(ctx, submit.NewAgencyForm(p, deps), files, flips)
			case client.KindAgent:
				var p dto.AgentPayload
				if err := decodePayload(raw, &p); err != nil {
					return err
				}
				out, err = runForm(ctx, submit.NewAgentForm(p, deps), files, flips)
			case client.KindProject:
				var p dto.ProjectPayload
				if err := decodePayload(raw, &p); err != nil {
					return err
				}
				out, err = runForm(ctx, submit.NewProjectForm(p, deps).Form, files, flips)
			}
			if err != nil {
				return err
			}

			var pretty bytes.Buffer
			if json.Indent(&pretty, out, "", "  ") != nil {
				pretty.Reset()
				pretty.Write(out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pretty.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (YAML or JSON)")
	cmd.Flags().StringArrayVar(&assets, "asset", nil, "field=path, repeat for several files")
	cmd.Flags().StringArrayVar(&toggles, "toggle", nil, "field=option, flips a multi-choice option")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// runForm 勾选 -> 上传 -> 校验并提交
func runForm[P any](ctx context.Context, form *submit.Form[P], files map[string][]client.File, toggles [][2]string) (json.RawMessage, error) {
	for _, t := range toggles {
		if _, err := form.Toggle(t[0], t[1]); err != nil {
			return nil, err
		}
	}
	if len(files) > 0 {
		if err := form.UploadAssets(ctx, files); err != nil {
			return nil, err
		}
	}
	return form.Submit(ctx)
}

// decodePayload YAML 先转成 JSON，复用 DTO 的 JSON 解码规则
func decodePayload(raw []byte, out any) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse payload: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("payload file is empty")
	}
	js, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert payload: %w", err)
	}
	if err := json.Unmarshal(js, out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}

// parsePairs 解析 key=value 列表
func parsePairs(in []string) ([][2]string, error) {
	out := make([][2]string, 0, len(in))
	for _, s := range in {
		k, v, ok := strings.Cut(s, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("expected field=value, got %q", s)
		}
		out = append(out, [2]string{k, v})
	}
	return out, nil
}

// readAssets 读取 --asset 指定的文件，同一字段可出现多次，保持命令行顺序
func readAssets(in []string) (map[string][]client.File, error) {
	pairs, err := parsePairs(in)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]client.File)
	for _, p := range pairs {
		data, err := os.ReadFile(p[1])
		if err != nil {
			return nil, fmt.Errorf("read asset %s: %w", p[0], err)
		}
		out[p[0]] = append(out[p[0]], client.File{
			Name:        filepath.Base(p[1]),
			ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(p[1]))),
			Data:        data,
		})
	}
	return out, nil
}
