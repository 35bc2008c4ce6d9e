package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/fieldtype"
	"github.com/tendant/simple-cms/pkg/simplecms/seed"
)

// NewSeedCommand applies the install seed and seed files
func NewSeedCommand(s *session) *cobra.Command {
	var install bool

	cmd := &cobra.Command{
		Use:   "seed [file...]",
		Short: "Apply seed files to the repository",
		Long: `Apply the built in install seed and the given YAML seed files.
Items that already exist are skipped, so seeding is safe to repeat.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applier := seed.NewApplier(s.repo(), nil)
			var files []*seed.File
			if install {
				f, err := seed.Install()
				if err != nil {
					return err
				}
				files = append(files, f)
			}
			for _, path := range args {
				f, err := seed.LoadFile(path)
				if err != nil {
					return err
				}
				files = append(files, f)
			}

			var total seed.Stats
			for _, f := range files {
				stats, err := applier.Apply(cmd.Context(), f)
				if err != nil {
					return err
				}
				total = addStats(total, stats)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Languages:     %d\n", total.Languages)
			fmt.Fprintf(out, "Sections:      %d\n", total.Sections)
			fmt.Fprintf(out, "Content types: %d\n", total.ContentTypes)
			fmt.Fprintf(out, "User groups:   %d\n", total.UserGroups)
			fmt.Fprintf(out, "Users:         %d\n", total.Users)
			fmt.Fprintf(out, "Roles:         %d\n", total.Roles)
			fmt.Fprintf(out, "Content:       %d\n", total.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&install, "install", true, "apply the built in install seed first")
	return cmd
}

func addStats(a, b seed.Stats) seed.Stats {
	return seed.Stats{
		Languages:    a.Languages + b.Languages,
		Sections:     a.Sections + b.Sections,
		ContentTypes: a.ContentTypes + b.ContentTypes,
		UserGroups:   a.UserGroups + b.UserGroups,
		Users:        a.Users + b.Users,
		Roles:        a.Roles + b.Roles,
		Content:      a.Content + b.Content,
	}
}

// NewContentTypesCommand lists content types by group
func NewContentTypesCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "content-types",
		Short: "List content types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := s.ctx(cmd)
			service := s.repo().ContentTypeService()
			groups, err := service.LoadContentTypeGroups(ctx)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "GROUP\tIDENTIFIER\tNAME\tFIELDS")
			for _, group := range groups {
				types, err := service.LoadContentTypes(ctx, group)
				if err != nil {
					return err
				}
				for _, ct := range types {
					fields := make([]string, 0, len(ct.FieldDefinitions))
					for _, def := range ct.FieldDefinitions {
						fields = append(fields, def.Identifier)
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", group.Identifier, ct.Identifier, ct.Names[ct.MainLanguageCode], strings.Join(fields, ","))
				}
			}
			return w.Flush()
		},
	}
}

// NewUsersCommand groups user management commands
func NewUsersCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	cmd.AddCommand(newUserCreateCommand(s))
	return cmd
}

func newUserCreateCommand(s *session) *cobra.Command {
	var user seed.User

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user in one or more groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if user.Login == "" || user.Email == "" || user.Password == "" {
				return errors.New("--login, --email and --password are required")
			}
			stats, err := seed.NewApplier(s.repo(), nil).Apply(cmd.Context(), &seed.File{Users: []seed.User{user}})
			if err != nil {
				return err
			}
			if stats.Users == 0 {
				return fmt.Errorf("user %q already exists", user.Login)
			}
			created, err := s.repo().UserService().LoadUserByLogin(s.ctx(cmd), user.Login)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", created.Login, created.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&user.Login, "login", "", "login name")
	cmd.Flags().StringVar(&user.Email, "email", "", "email address")
	cmd.Flags().StringVar(&user.Password, "password", "", "password")
	cmd.Flags().StringVar(&user.Name, "name", "", "display name")
	cmd.Flags().StringSliceVar(&user.Groups, "group", []string{"Users/Editors"}, "group path such as Users/Editors, repeatable")
	return cmd
}

// NewSearchCommand runs a content search
func NewSearchCommand(s *session) *cobra.Command {
	var (
		name     string
		types    []string
		subtree  int64
		limit    int
		sortName bool
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search published content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := s.ctx(cmd)
			var criteria []simplecms.Criterion
			if name != "" {
				criteria = append(criteria, simplecms.ContentName{Pattern: name})
			}
			if len(types) > 0 {
				criteria = append(criteria, simplecms.ContentTypeIdentifier{Identifiers: types})
			}
			if subtree != 0 {
				loc, err := s.repo().LocationService().LoadLocation(ctx, subtree)
				if err != nil {
					return err
				}
				criteria = append(criteria, simplecms.Subtree{PathStrings: []string{loc.PathString}})
			}

			query := simplecms.Query{Filter: simplecms.MatchAll{}, Limit: limit}
			if len(criteria) > 0 {
				query.Filter = simplecms.LogicalAnd{Criteria: criteria}
			}
			if sortName {
				query.SortClauses = []simplecms.SortClause{{Target: simplecms.SortByContentName, Direction: simplecms.SortAscending}}
			}

			result, err := s.repo().SearchService().FindContentInfo(ctx, query)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tLOCATION\tNAME")
			for _, info := range result.Items {
				fmt.Fprintf(w, "%d\t%d\t%s\n", info.ID, info.MainLocationID, info.Name)
			}
			fmt.Fprintf(w, "\n%d of %d\n", len(result.Items), result.TotalCount)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "name pattern, * is a wildcard")
	cmd.Flags().StringSliceVar(&types, "type", nil, "content type identifier, repeatable")
	cmd.Flags().Int64Var(&subtree, "subtree", 0, "location ID to search below")
	cmd.Flags().IntVar(&limit, "limit", 25, "maximum number of hits")
	cmd.Flags().BoolVar(&sortName, "sort-name", false, "sort by name")
	return cmd
}

// NewTrashCommand lists and empties the trash
func NewTrashCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trash",
		Short: "Inspect and empty the trash",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List trashed locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := s.repo().TrashService().FindTrashItems(s.ctx(cmd), simplecms.TrashQuery{})
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCONTENT\tPATH\tTRASHED")
			for _, item := range items.Items {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", item.ID, item.ContentID, item.PathString, item.TrashedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "empty",
		Short: "Permanently delete everything in the trash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := s.repo().TrashService().EmptyTrash(s.ctx(cmd))
			if err != nil {
				return err
			}
			removed := 0
			for _, r := range results.Items {
				if r.ContentRemoved {
					removed++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d trash items, %d content items removed\n", len(results.Items), removed)
			return nil
		},
	})

	return cmd
}

// NewReindexCommand rebuilds the search index
func NewReindexCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the search index from stored content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.runtime.Core.Reindex(cmd.Context()); err != nil {
				return fmt.Errorf("reindex failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Search index rebuilt")
			return nil
		},
	}
}

// NewUploadCommand stores a file as a published file content item
func NewUploadCommand(s *session) *cobra.Command {
	var (
		parent   int64
		name     string
		mimeType string
	)

	cmd := &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a file as file content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filePath := args[0]
			f, err := os.Open(filePath)
			if err != nil {
				return fmt.Errorf("file does not exist: %s", filePath)
			}
			defer f.Close()

			ctx := s.ctx(cmd)
			value, err := s.runtime.Binary.Store(ctx, filepath.Base(filePath), mimeType, f)
			if err != nil {
				return err
			}

			if parent == 0 {
				media, err := s.repo().ContentService().LoadContentInfoByRemoteID(ctx, "media")
				if err != nil {
					return err
				}
				parent = media.MainLocationID
			}
			if name == "" {
				name = value.FileName
			}

			contents := s.repo().ContentService()
			ct, err := s.repo().ContentTypeService().LoadContentTypeByIdentifier(ctx, "file")
			if err != nil {
				return err
			}
			create := simplecms.NewContentCreateStruct(ct, ct.MainLanguageCode)
			create.SetField("name", name)
			create.SetField("file", value)
			draft, err := contents.CreateContent(ctx, create, []simplecms.LocationCreateStruct{{ParentLocationID: parent}})
			if err != nil {
				_ = s.runtime.Binary.Delete(ctx, value)
				return err
			}
			content, err := contents.PublishVersion(ctx, draft.VersionInfo, nil)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s as content %d (%s, %d bytes)\n", value.FileName, content.ID(), value.MimeType, value.FileSize)
			if value.URI != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Download URL: %s\n", value.URI)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&parent, "parent", 0, "parent location ID (default: the media folder)")
	cmd.Flags().StringVar(&name, "name", "", "content name (default: the file name)")
	cmd.Flags().StringVar(&mimeType, "mime-type", "", "MIME type (default: detected)")
	return cmd
}

// NewDownloadCommand writes the file of a file content item
func NewDownloadCommand(s *session) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "download <content-id>",
		Short: "Download the file of a content item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int64
			if _, err := fmt.Sscan(args[0], &id); err != nil {
				return fmt.Errorf("invalid content id %q", args[0])
			}
			ctx := s.ctx(cmd)
			content, err := s.repo().ContentService().LoadContent(ctx, id, nil, 0)
			if err != nil {
				return err
			}
			raw, _ := content.FieldValue("file", "")
			value, ok := raw.(fieldtype.BinaryFileValue)
			if !ok || value.ID == "" {
				return fmt.Errorf("content %d has no file", id)
			}

			reader, err := s.runtime.Binary.Open(ctx, value)
			if err != nil {
				return err
			}
			defer reader.Close()

			var out io.Writer = cmd.OutOrStdout()
			if outputPath != "" {
				file, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer file.Close()
				out = file
			}
			_, err = io.Copy(out, reader)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	return cmd
}
